package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-peer-sync/models"
	"github.com/go-resty/resty/v2"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpPeerAdapter struct {
	client *resty.Client

	mu     sync.RWMutex
	token  string
	peerID string
}

func NewHTTPPeerAdapter(cfg HTTPClientConfig) PeerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpPeerAdapter{client: cli}
}

func (h *httpPeerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpPeerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpPeerAdapter) PeerID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.peerID
}

func (h *httpPeerAdapter) OpenSession(ctx context.Context, chain []models.Certificate) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SessionRequest{Certificates: chain}).
		Post("/api/session/")
	if err != nil {
		return fmt.Errorf("open session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	var session models.SessionResponse
	if err = json.Unmarshal(resp.Body(), &session); err != nil {
		return fmt.Errorf("decode session response: %w", err)
	}

	h.mu.Lock()
	h.token = session.Token
	h.peerID = session.InstanceID
	h.mu.Unlock()

	return nil
}

func (h *httpPeerAdapter) PullDelta(ctx context.Context, req models.DeltaRequest) (models.DeltaResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("instance_id", req.InstanceID).
		SetQueryParam("filter", req.Filter).
		SetQueryParam("since_counter", strconv.FormatInt(req.SinceCounter, 10)).
		Get("/api/sync/delta")
	if err != nil {
		return models.DeltaResponse{}, fmt.Errorf("pull delta request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeltaResponse{}, err
	}

	var delta models.DeltaResponse
	if err = json.Unmarshal(resp.Body(), &delta); err != nil {
		return models.DeltaResponse{}, fmt.Errorf("decode delta response: %w", err)
	}

	return delta, nil
}

func (h *httpPeerAdapter) PushDelta(ctx context.Context, delta models.Delta) (models.MergeReport, error) {
	delta.Length = len(delta.Records)

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(delta).
		Post("/api/sync/delta")
	if err != nil {
		return models.MergeReport{}, fmt.Errorf("push delta request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MergeReport{}, err
	}

	var report models.MergeReport
	if err = json.Unmarshal(resp.Body(), &report); err != nil {
		return models.MergeReport{}, fmt.Errorf("decode merge report: %w", err)
	}

	return report, nil
}

func (h *httpPeerAdapter) GetWatermark(ctx context.Context, instanceID, filter string) (models.WatermarkResponse, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("instance_id", instanceID).
		SetQueryParam("filter", filter).
		Get("/api/sync/watermark")
	if err != nil {
		return models.WatermarkResponse{}, fmt.Errorf("get watermark request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.WatermarkResponse{}, err
	}

	var mark models.WatermarkResponse
	if err = json.Unmarshal(resp.Body(), &mark); err != nil {
		return models.WatermarkResponse{}, fmt.Errorf("decode watermark response: %w", err)
	}

	return mark, nil
}

func (h *httpPeerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
