// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/registry"
	"github.com/MKhiriev/go-peer-sync/internal/store"
	"github.com/MKhiriev/go-peer-sync/internal/utils"
	"github.com/MKhiriev/go-peer-sync/models"
)

// recordService is the concrete implementation of [RecordService].
//
// Application writes land in the entity table with the dirty bit set; the
// dirty bit is cleared in exactly one place, [recordService.SerializeDirty],
// after the change has been captured as a store record version. Counter
// values come from an allocator seeded with the highest counter this instance
// has ever persisted, so they survive restarts without repeating.
type recordService struct {
	logger     *logger.Logger
	registry   *registry.Registry
	entities   store.EntityRepository
	records    store.RecordRepository
	counters   *counterAllocator
	instanceID string
}

// NewRecordService constructs a [RecordService]. It reads the highest
// persisted local counter to seed the allocator, which is why construction
// can fail.
func NewRecordService(ctx context.Context, storages *store.Storages, reg *registry.Registry, instanceID string, logger *logger.Logger) (RecordService, error) {
	seed, err := storages.Records.MaxLocalCounter(ctx, instanceID)
	if err != nil {
		return nil, fmt.Errorf("seed counter allocator: %w", err)
	}

	logger.Debug().Str("instance_id", instanceID).Int64("counter_seed", seed).Msg("creating record service")

	return &recordService{
		logger:     logger,
		registry:   reg,
		entities:   storages.Entities,
		records:    storages.Records,
		counters:   newCounterAllocator(seed),
		instanceID: instanceID,
	}, nil
}

// Save implements [RecordService].
func (s *recordService) Save(ctx context.Context, entity models.Syncable) error {
	return s.save(ctx, entity, true)
}

// SaveWithoutDirty implements [RecordService].
func (s *recordService) SaveWithoutDirty(ctx context.Context, entity models.Syncable) error {
	return s.save(ctx, entity, false)
}

func (s *recordService) save(ctx context.Context, entity models.Syncable, dirty bool) error {
	if entity == nil || entity.SyncID() == "" {
		return ErrInvalidDataProvided
	}

	payload, err := s.registry.Serialize(entity, nil)
	if err != nil {
		return fmt.Errorf("serialize entity: %w", err)
	}

	row := store.EntityRow{
		ID:         entity.SyncID(),
		Model:      entity.ModelName(),
		Payload:    payload,
		Dirty:      dirty,
		Partitions: entity.PartitionKeys(),
	}

	if err = s.entities.SaveEntity(ctx, row); err != nil {
		return fmt.Errorf("save entity: %w", err)
	}

	return nil
}

// Load implements [RecordService].
func (s *recordService) Load(ctx context.Context, id string) (models.Syncable, error) {
	row, err := s.entities.GetEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	entity, err := s.registry.Deserialize(row.Payload)
	if err != nil {
		return nil, fmt.Errorf("deserialize entity %s: %w", id, err)
	}

	return entity, nil
}

// Delete implements [RecordService].
func (s *recordService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidDataProvided
	}

	return s.entities.MarkDeleted(ctx, id)
}

// BulkUpdate implements [RecordService].
func (s *recordService) BulkUpdate(ctx context.Context, model, filter string, patch map[string]any) (int64, error) {
	if model == "" || len(patch) == 0 {
		return 0, ErrInvalidDataProvided
	}
	if _, err := s.registry.Lookup(model); err != nil {
		return 0, err
	}

	return s.entities.UpdateWhere(ctx, model, filter, patch)
}

// SerializeDirty implements [RecordService].
//
// Entities whose payload and tombstone state are unchanged since the last
// captured version are skipped but still cleaned: their dirty bit carried no
// new information.
func (s *recordService) SerializeDirty(ctx context.Context, filter string) (int, error) {
	rows, err := s.entities.ListDirty(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("list dirty entities: %w", err)
	}

	produced := 0
	cleared := make([]string, 0, len(rows))

	for _, row := range rows {
		record, changed, err := s.recordFromEntity(ctx, row)
		if err != nil {
			return produced, err
		}

		if changed {
			if err = s.records.SaveRecord(ctx, record); err != nil {
				return produced, fmt.Errorf("save record %s: %w", row.ID, err)
			}
			produced++
		}

		cleared = append(cleared, row.ID)
	}

	if err = s.entities.SetDirty(ctx, cleared, false); err != nil {
		return produced, fmt.Errorf("clear dirty bits: %w", err)
	}

	s.logger.Debug().Str("filter", filter).Int("produced", produced).Msg("serialized dirty entities")

	return produced, nil
}

// recordFromEntity builds the next store record version for a dirty entity.
// The version tag is a pure function of the payload and the tombstone flag,
// so re-serializing an unchanged entity is detected and reported as no
// change, while a deletion always yields a tag distinct from the live one.
func (s *recordService) recordFromEntity(ctx context.Context, row store.EntityRow) (models.StoreRecord, bool, error) {
	version := utils.VersionTag(row.Payload, row.Deleted)

	current, err := s.records.GetRecord(ctx, row.ID)
	found := err == nil
	if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return models.StoreRecord{}, false, fmt.Errorf("load record %s: %w", row.ID, err)
	}

	if found && current.Version == version {
		return models.StoreRecord{}, false, nil
	}

	counter := s.counters.Next()
	counters := current.Counters.Copy()
	counters[s.instanceID] = counter

	var history []string
	if found {
		history = append(append([]string{}, current.History...), current.Version)
	}

	record := models.StoreRecord{
		ID:                row.ID,
		Serialized:        row.Payload,
		Deleted:           row.Deleted,
		Version:           version,
		History:           history,
		LastSavedInstance: s.instanceID,
		LastSavedCounter:  counter,
		Counters:          counters,
		Partitions:        row.Partitions,
	}

	return record, true, nil
}
