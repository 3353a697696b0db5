// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-peer-sync/internal/adapter"
	"github.com/MKhiriev/go-peer-sync/internal/config"
	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/service"
	"github.com/MKhiriev/go-peer-sync/models"
)

// SyncWorker periodically exchanges deltas with a single peer. Each round
// runs, per configured partition filter:
//
//  1. serialize local dirty entities into new store record versions;
//  2. pull from the peer everything newer than the local watermark for that
//     peer and fold it in (ApplyDelta advances the watermark atomically with
//     the batch);
//  3. ask the peer how far it has seen this instance and push everything
//     newer.
//
// A failed filter aborts the round for that filter only; the next tick
// retries from the unadvanced watermark, which is safe because delta
// application is idempotent.
//
// The worker keeps the device's certificate chain so it can reopen the
// session when the token expires mid-run: on [adapter.ErrUnauthorized] it
// presents the chain again and retries the filter once.
type SyncWorker struct {
	records  service.RecordService
	sync     service.SyncService
	peer     adapter.PeerAdapter
	chain    []models.Certificate
	filters  []string
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSyncWorker(records service.RecordService, syncService service.SyncService, peer adapter.PeerAdapter, chain []models.Certificate, cfg config.Workers, logger *logger.Logger) *SyncWorker {
	filters := cfg.SyncFilters
	if len(filters) == 0 {
		// an empty filter matches every partition
		filters = []string{""}
	}

	return &SyncWorker{
		records:  records,
		sync:     syncService,
		peer:     peer,
		chain:    chain,
		filters:  filters,
		interval: cfg.SyncInterval,
		logger:   logger,
	}
}

// Run implements [Worker]. It starts the background sync loop with a
// background context; use Start directly to bind the loop to a caller's
// context.
func (w *SyncWorker) Run() {
	w.Start(context.Background())
}

// Start stops any previously running loop, then launches a background
// goroutine that runs a sync round every interval. If the interval is zero or
// negative it defaults to 5 minutes. The goroutine exits when ctx is
// cancelled or Stop is called.
func (w *SyncWorker) Start(ctx context.Context) {
	interval := w.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	w.Stop()

	w.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				_ = w.SyncOnce(loopCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the loop is not running.
func (w *SyncWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// SyncOnce runs a single sync round over every configured filter. The first
// filter to fail ends the round; filters already exchanged stay exchanged.
// An expired session is reopened with the stored certificate chain and the
// filter retried once before the round counts as failed.
func (w *SyncWorker) SyncOnce(ctx context.Context) error {
	for _, filter := range w.filters {
		err := w.syncFilter(ctx, filter)
		if errors.Is(err, adapter.ErrUnauthorized) {
			err = w.reopenAndRetry(ctx, filter)
		}
		if err != nil {
			w.logger.Err(err).Str("filter", filter).Msg("sync round failed")
			return err
		}
	}
	return nil
}

// reopenAndRetry presents the certificate chain again and reruns the filter.
// Tokens routinely outlive short sync intervals but not long ones, so an
// expired session between rounds is expected, not fatal.
func (w *SyncWorker) reopenAndRetry(ctx context.Context, filter string) error {
	w.logger.Info().Str("filter", filter).Msg("session expired, reopening")

	if err := w.peer.OpenSession(ctx, w.chain); err != nil {
		return err
	}

	return w.syncFilter(ctx, filter)
}

func (w *SyncWorker) syncFilter(ctx context.Context, filter string) error {
	log := w.logger.GetChildLogger()

	serialized, err := w.records.SerializeDirty(ctx, filter)
	if err != nil {
		return err
	}
	if serialized > 0 {
		log.Debug().Str("filter", filter).Int("records", serialized).Msg("dirty entities serialized")
	}

	if err = w.pull(ctx, filter); err != nil {
		return err
	}

	return w.push(ctx, filter)
}

// pull fetches everything the peer holds beyond the local watermark for that
// peer and folds it into local state.
func (w *SyncWorker) pull(ctx context.Context, filter string) error {
	peerID := w.peer.PeerID()

	mark, err := w.sync.Watermark(ctx, peerID, filter)
	if err != nil {
		return err
	}

	pulled, err := w.peer.PullDelta(ctx, models.DeltaRequest{
		InstanceID:   peerID,
		Filter:       filter,
		SinceCounter: mark.MaxCounter,
	})
	if err != nil {
		return err
	}
	if len(pulled.Records) == 0 {
		return nil
	}

	report, err := w.sync.ApplyDelta(ctx, models.Delta{
		InstanceID: peerID,
		Filter:     filter,
		Records:    pulled.Records,
		Length:     len(pulled.Records),
	})
	if err != nil {
		return err
	}

	w.logger.Info().
		Str("peer", peerID).
		Str("filter", filter).
		Int("pulled", len(pulled.Records)).
		Int("applied", report.Applied()).
		Int("discarded", report.Discarded).
		Msg("pulled delta applied")

	return nil
}

// push sends the peer everything it has not yet seen from this instance,
// according to the peer's own watermark.
func (w *SyncWorker) push(ctx context.Context, filter string) error {
	localID := w.sync.LocalInstanceID()

	peerMark, err := w.peer.GetWatermark(ctx, localID, filter)
	if err != nil {
		return err
	}

	outgoing, err := w.sync.GetDelta(ctx, models.DeltaRequest{
		InstanceID:   localID,
		Filter:       filter,
		SinceCounter: peerMark.MaxCounter,
	})
	if err != nil {
		return err
	}
	if len(outgoing.Records) == 0 {
		return nil
	}

	report, err := w.peer.PushDelta(ctx, outgoing)
	if err != nil {
		return err
	}

	w.logger.Info().
		Str("peer", w.peer.PeerID()).
		Str("filter", filter).
		Int("pushed", len(outgoing.Records)).
		Int("applied", report.Applied()).
		Int("rejected", report.Rejected).
		Msg("pushed delta accepted")

	return nil
}
