// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/registry"
	"github.com/MKhiriev/go-peer-sync/internal/store"
	"github.com/MKhiriev/go-peer-sync/internal/utils"
	"github.com/MKhiriev/go-peer-sync/models"
)

// syncService is the concrete implementation of [SyncService].
//
// markMu serializes every delta application and watermark advance: both are
// get-modify-save sequences, and interleaving them would either lose one
// peer's counter contributions or push a mark backwards past a faster
// writer.
type syncService struct {
	logger     *logger.Logger
	registry   *registry.Registry
	records    store.RecordRepository
	watermarks store.WatermarkRepository
	instanceID string

	markMu sync.Mutex
}

// NewSyncService constructs a [SyncService] bound to the local instance
// identity.
func NewSyncService(storages *store.Storages, reg *registry.Registry, instanceID string, logger *logger.Logger) SyncService {
	logger.Debug().Str("instance_id", instanceID).Msg("creating sync service")
	return &syncService{
		logger:     logger,
		registry:   reg,
		records:    storages.Records,
		watermarks: storages.Watermarks,
		instanceID: instanceID,
	}
}

// LocalInstanceID implements [SyncService].
func (s *syncService) LocalInstanceID() string {
	return s.instanceID
}

// GetDelta implements [SyncService].
func (s *syncService) GetDelta(ctx context.Context, req models.DeltaRequest) (models.Delta, error) {
	if req.InstanceID == "" {
		return models.Delta{}, ErrInvalidDataProvided
	}
	if err := sessionAllows(ctx, models.OperationRead); err != nil {
		return models.Delta{}, err
	}

	records, err := s.records.ListRecordsByPartition(ctx, req.Filter)
	if err != nil {
		return models.Delta{}, fmt.Errorf("list records: %w", err)
	}

	scope, scoped := utils.GetScopeFromContext(ctx)

	matched := make([]models.StoreRecord, 0, len(records))
	for _, record := range records {
		if record.Counters.Get(req.InstanceID) <= req.SinceCounter {
			continue
		}
		if scoped && !recordInScope(scope, record) {
			continue
		}
		matched = append(matched, record)
	}

	return models.Delta{
		InstanceID: s.instanceID,
		Filter:     req.Filter,
		Records:    matched,
		Length:     len(matched),
	}, nil
}

// ApplyDelta implements [SyncService].
//
// The surviving records and the advanced watermark are committed in one
// transaction, so a crash mid-apply leaves the watermark behind and the
// peer simply redelivers — every redelivered record lands as a discard.
func (s *syncService) ApplyDelta(ctx context.Context, delta models.Delta) (models.MergeReport, error) {
	if delta.InstanceID == "" {
		return models.MergeReport{}, ErrInvalidDataProvided
	}
	if err := sessionAllows(ctx, models.OperationWrite); err != nil {
		return models.MergeReport{}, err
	}

	scope, scoped := utils.GetScopeFromContext(ctx)

	// The whole read-merge-commit sequence runs under markMu. Two deltas
	// applied concurrently would each merge against the same stored record
	// and the second commit would overwrite the first one's counter
	// contributions, with no redelivery since its watermark had advanced.
	s.markMu.Lock()
	defer s.markMu.Unlock()

	var report models.MergeReport
	toApply := make([]models.StoreRecord, 0, len(delta.Records))
	var maxSeen int64

	for _, incoming := range delta.Records {
		if scoped && !recordInScope(scope, incoming) {
			report.Rejected++
			continue
		}

		current, err := s.records.GetRecord(ctx, incoming.ID)
		found := err == nil
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return report, fmt.Errorf("load record %s: %w", incoming.ID, err)
		}

		merged, outcome := s.mergeRecords(current, found, incoming)
		switch outcome {
		case outcomeCreated:
			report.Created++
			toApply = append(toApply, merged)
		case outcomeFastForwarded:
			report.FastForwarded++
			toApply = append(toApply, merged)
		case outcomeConflict:
			report.Conflicts++
			toApply = append(toApply, merged)
		case outcomeDiscarded:
			report.Discarded++
		}

		// Even a discarded record proves we have seen the sender's
		// contribution up to this counter.
		if c := incoming.Counters.Get(delta.InstanceID); c > maxSeen {
			maxSeen = c
		}
	}

	mark, err := s.watermarks.GetWatermark(ctx, delta.InstanceID, delta.Filter)
	if err != nil {
		return report, fmt.Errorf("load watermark: %w", err)
	}
	if maxSeen > mark.MaxCounter {
		mark.MaxCounter = maxSeen
	}

	if err = s.records.ApplyBatch(ctx, toApply, mark); err != nil {
		return report, fmt.Errorf("apply batch: %w", err)
	}

	s.logger.Info().
		Str("peer", delta.InstanceID).
		Str("filter", delta.Filter).
		Int("applied", report.Applied()).
		Int("discarded", report.Discarded).
		Int("rejected", report.Rejected).
		Msg("applied delta")

	return report, nil
}

// Watermark implements [SyncService].
func (s *syncService) Watermark(ctx context.Context, instanceID, filter string) (models.DatabaseMaxCounter, error) {
	if instanceID == "" {
		return models.DatabaseMaxCounter{}, ErrInvalidDataProvided
	}

	return s.watermarks.GetWatermark(ctx, instanceID, filter)
}

// AdvanceWatermark implements [SyncService].
func (s *syncService) AdvanceWatermark(ctx context.Context, mark models.DatabaseMaxCounter) error {
	if mark.InstanceID == "" {
		return ErrInvalidDataProvided
	}

	s.markMu.Lock()
	defer s.markMu.Unlock()

	existing, err := s.watermarks.GetWatermark(ctx, mark.InstanceID, mark.Filter)
	if err != nil {
		return fmt.Errorf("load watermark: %w", err)
	}

	if mark.MaxCounter < existing.MaxCounter {
		return fmt.Errorf("%w: %d < %d for instance %s", ErrWatermarkRegression, mark.MaxCounter, existing.MaxCounter, mark.InstanceID)
	}

	return s.watermarks.SaveWatermark(ctx, mark)
}

// sessionAllows checks the operation against the session's delegated
// operations. A context without an operations claim is unrestricted: like the
// scope claim, the claim only exists on requests that arrived through an
// authenticated session.
func sessionAllows(ctx context.Context, operation string) error {
	operations, restricted := utils.GetOperationsFromContext(ctx)
	if !restricted {
		return nil
	}

	for _, op := range operations {
		if op == operation {
			return nil
		}
	}

	return fmt.Errorf("%w: operation %q not delegated to this session", ErrScopeViolation, operation)
}

// recordInScope reports whether any of the record's partition keys falls
// under the session's certificate scope.
func recordInScope(scope string, record models.StoreRecord) bool {
	payload := models.CertificatePayload{Scope: scope}
	for _, partition := range record.Partitions {
		if payload.ScopeContains(partition) {
			return true
		}
	}
	return false
}
