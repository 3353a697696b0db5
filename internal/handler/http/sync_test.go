package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/MKhiriev/go-peer-sync/internal/service"
	"github.com/MKhiriev/go-peer-sync/internal/store"
	"github.com/MKhiriev/go-peer-sync/models"
)

func TestGetDelta_Success(t *testing.T) {
	expected := []models.StoreRecord{
		{ID: "r1", Version: "v1", Counters: models.CounterMap{"device-1": 8}},
	}

	var gotRequest models.DeltaRequest
	h := newHandlerWithServices(&service.Services{
		SyncService: &mockSyncService{
			getDeltaFn: func(ctx context.Context, req models.DeltaRequest) (models.Delta, error) {
				gotRequest = req
				return models.Delta{InstanceID: req.InstanceID, Filter: req.Filter, Records: expected}, nil
			},
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/api/sync/delta?instance_id=device-1&filter=facility/&since_counter=7", nil)
	w := httptest.NewRecorder()

	h.getDelta(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	want := models.DeltaRequest{InstanceID: "device-1", Filter: "facility/", SinceCounter: 7}
	if gotRequest != want {
		t.Errorf("expected delta request %+v, got %+v", want, gotRequest)
	}

	var response models.DeltaResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if response.Length != 1 {
		t.Errorf("expected length 1, got %d", response.Length)
	}
	if !reflect.DeepEqual(response.Records, expected) {
		t.Errorf("expected records %+v, got %+v", expected, response.Records)
	}
}

func TestGetDelta_MissingInstanceID(t *testing.T) {
	h := newHandlerWithServices(&service.Services{SyncService: &mockSyncService{}})

	r := httptest.NewRequest(http.MethodGet, "/api/sync/delta?filter=facility/", nil)
	w := httptest.NewRecorder()

	h.getDelta(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetDelta_BadSinceCounter(t *testing.T) {
	h := newHandlerWithServices(&service.Services{SyncService: &mockSyncService{}})

	r := httptest.NewRequest(http.MethodGet, "/api/sync/delta?instance_id=device-1&since_counter=abc", nil)
	w := httptest.NewRecorder()

	h.getDelta(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestPushDelta_Success(t *testing.T) {
	var gotDelta models.Delta
	h := newHandlerWithServices(&service.Services{
		SyncService: &mockSyncService{
			applyDeltaFn: func(ctx context.Context, delta models.Delta) (models.MergeReport, error) {
				gotDelta = delta
				return models.MergeReport{Created: 1, Conflicts: 1}, nil
			},
		},
	})

	delta := models.Delta{
		InstanceID: "device-1",
		Filter:     "facility/",
		Records:    []models.StoreRecord{{ID: "r1"}, {ID: "r2"}},
		Length:     2,
	}
	body, _ := json.Marshal(delta)

	r := httptest.NewRequest(http.MethodPost, "/api/sync/delta", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.pushDelta(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if gotDelta.InstanceID != "device-1" || len(gotDelta.Records) != 2 {
		t.Errorf("unexpected delta passed to service: %+v", gotDelta)
	}

	var report models.MergeReport
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("error decoding merge report: %v", err)
	}
	if report.Applied() != 2 {
		t.Errorf("expected 2 applied records, got %d", report.Applied())
	}
}

func TestPushDelta_InvalidJSON(t *testing.T) {
	h := newHandlerWithServices(&service.Services{SyncService: &mockSyncService{}})

	r := httptest.NewRequest(http.MethodPost, "/api/sync/delta", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	h.pushDelta(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestPushDelta_StoreFailureMapsTo500(t *testing.T) {
	h := newHandlerWithServices(&service.Services{
		SyncService: &mockSyncService{
			applyDeltaFn: func(ctx context.Context, delta models.Delta) (models.MergeReport, error) {
				return models.MergeReport{}, store.ErrExecutingQuery
			},
		},
	})

	body, _ := json.Marshal(models.Delta{InstanceID: "device-1"})
	r := httptest.NewRequest(http.MethodPost, "/api/sync/delta", bytes.NewReader(body))
	w := httptest.NewRecorder()

	h.pushDelta(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestGetWatermark_Success(t *testing.T) {
	h := newHandlerWithServices(&service.Services{
		SyncService: &mockSyncService{
			watermarkFn: func(ctx context.Context, instanceID, filter string) (models.DatabaseMaxCounter, error) {
				return models.DatabaseMaxCounter{InstanceID: instanceID, Filter: filter, MaxCounter: 42}, nil
			},
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/api/sync/watermark?instance_id=device-1&filter=facility/", nil)
	w := httptest.NewRecorder()

	h.getWatermark(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var response models.WatermarkResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	want := models.WatermarkResponse{InstanceID: "device-1", Filter: "facility/", MaxCounter: 42}
	if response != want {
		t.Errorf("expected %+v, got %+v", want, response)
	}
}

func TestGetWatermark_MissingInstanceID(t *testing.T) {
	h := newHandlerWithServices(&service.Services{SyncService: &mockSyncService{}})

	r := httptest.NewRequest(http.MethodGet, "/api/sync/watermark", nil)
	w := httptest.NewRecorder()

	h.getWatermark(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
