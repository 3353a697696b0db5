package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/mock"
	"github.com/MKhiriev/go-peer-sync/internal/store"
	"github.com/MKhiriev/go-peer-sync/internal/utils"
	"github.com/MKhiriev/go-peer-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRecordSvc(t *testing.T, ctrl *gomock.Controller, counterSeed int64) (*recordService, *mock.MockEntityRepository, *mock.MockRecordRepository) {
	t.Helper()
	entities := mock.NewMockEntityRepository(ctrl)
	records := mock.NewMockRecordRepository(ctrl)
	storages := &store.Storages{Entities: entities, Records: records}

	records.EXPECT().MaxLocalCounter(gomock.Any(), "A").Return(counterSeed, nil)

	svc, err := NewRecordService(context.Background(), storages, newTestRegistry(t, nil), "A", logger.Nop())
	require.NoError(t, err)

	return svc.(*recordService), entities, records
}

func TestSave_SetsDirtyBit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, entities, _ := newTestRecordSvc(t, ctrl, 0)
	ctx := context.Background()

	entity := &visitTally{Base: models.Base{ID: "e1"}, Facility: "f1", Visits: 3}

	entities.EXPECT().SaveEntity(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, row store.EntityRow) error {
			assert.Equal(t, "e1", row.ID)
			assert.Equal(t, "visittally", row.Model)
			assert.True(t, row.Dirty, "application writes must set the dirty bit")
			assert.Equal(t, []string{"facility/f1"}, row.Partitions)
			return nil
		})

	require.NoError(t, svc.Save(ctx, entity))
}

func TestSaveWithoutDirty_LeavesDirtyBitClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, entities, _ := newTestRecordSvc(t, ctrl, 0)
	ctx := context.Background()

	entities.EXPECT().SaveEntity(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, row store.EntityRow) error {
			assert.False(t, row.Dirty)
			return nil
		})

	err := svc.SaveWithoutDirty(ctx, &visitTally{Base: models.Base{ID: "e1"}, Facility: "f1"})
	require.NoError(t, err)
}

func TestSave_RejectsEntityWithoutID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _ := newTestRecordSvc(t, ctrl, 0)

	err := svc.Save(context.Background(), &visitTally{Facility: "f1"})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestSerializeDirty_ProducesVersionedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// Seed 5: the allocator must continue from persisted state, not restart.
	svc, entities, records := newTestRecordSvc(t, ctrl, 5)
	ctx := context.Background()

	payload := json.RawMessage(`{"facility":"f1","id":"e1","model":"visittally","visits":3}`)
	row := store.EntityRow{ID: "e1", Model: "visittally", Payload: payload, Dirty: true, Partitions: []string{"facility/f1"}}

	entities.EXPECT().ListDirty(ctx, "facility/").Return([]store.EntityRow{row}, nil)
	records.EXPECT().GetRecord(ctx, "e1").Return(models.StoreRecord{}, store.ErrRecordNotFound)
	records.EXPECT().SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.StoreRecord) error {
			assert.Equal(t, "e1", record.ID)
			assert.Equal(t, utils.VersionTag(payload, false), record.Version)
			assert.Empty(t, record.History)
			assert.Equal(t, "A", record.LastSavedInstance)
			assert.Equal(t, int64(6), record.LastSavedCounter)
			assert.Equal(t, int64(6), record.Counters.Get("A"))
			assert.Equal(t, []string{"facility/f1"}, record.Partitions)
			return nil
		})
	entities.EXPECT().SetDirty(ctx, []string{"e1"}, false).Return(nil)

	produced, err := svc.SerializeDirty(ctx, "facility/")

	require.NoError(t, err)
	assert.Equal(t, 1, produced)
}

func TestSerializeDirty_SecondVersionExtendsHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, entities, records := newTestRecordSvc(t, ctrl, 6)
	ctx := context.Background()

	payload := json.RawMessage(`{"facility":"f1","id":"e1","model":"visittally","visits":4}`)
	row := store.EntityRow{ID: "e1", Model: "visittally", Payload: payload, Dirty: true, Partitions: []string{"facility/f1"}}

	previous := models.StoreRecord{
		ID:                "e1",
		Version:           "old-version",
		LastSavedInstance: "A",
		LastSavedCounter:  6,
		Counters:          models.CounterMap{"A": 6, "B": 2},
	}

	entities.EXPECT().ListDirty(ctx, "").Return([]store.EntityRow{row}, nil)
	records.EXPECT().GetRecord(ctx, "e1").Return(previous, nil)
	records.EXPECT().SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.StoreRecord) error {
			assert.Equal(t, []string{"old-version"}, record.History)
			assert.Equal(t, int64(7), record.LastSavedCounter)
			assert.Equal(t, models.CounterMap{"A": 7, "B": 2}, record.Counters,
				"earlier contributions stay in the map")
			return nil
		})
	entities.EXPECT().SetDirty(ctx, []string{"e1"}, false).Return(nil)

	produced, err := svc.SerializeDirty(ctx, "")

	require.NoError(t, err)
	assert.Equal(t, 1, produced)
}

func TestSerializeDirty_UnchangedPayloadOnlyClearsDirty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, entities, records := newTestRecordSvc(t, ctrl, 0)
	ctx := context.Background()

	payload := json.RawMessage(`{"facility":"f1","id":"e1","model":"visittally","visits":3}`)
	row := store.EntityRow{ID: "e1", Model: "visittally", Payload: payload, Dirty: true}

	// The stored record already captures this exact payload.
	previous := models.StoreRecord{ID: "e1", Version: utils.VersionTag(payload, false)}

	entities.EXPECT().ListDirty(ctx, "").Return([]store.EntityRow{row}, nil)
	records.EXPECT().GetRecord(ctx, "e1").Return(previous, nil)
	entities.EXPECT().SetDirty(ctx, []string{"e1"}, false).Return(nil)

	produced, err := svc.SerializeDirty(ctx, "")

	require.NoError(t, err)
	assert.Zero(t, produced, "no new version for an unchanged payload")
}

func TestSerializeDirty_TombstonePropagatesDeletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, entities, records := newTestRecordSvc(t, ctrl, 0)
	ctx := context.Background()

	payload := json.RawMessage(`{"facility":"f1","id":"e1","model":"visittally","visits":3}`)
	row := store.EntityRow{ID: "e1", Model: "visittally", Payload: payload, Dirty: true, Deleted: true}

	previous := models.StoreRecord{ID: "e1", Version: utils.VersionTag(payload, false), Counters: models.CounterMap{"A": 1}}

	entities.EXPECT().ListDirty(ctx, "").Return([]store.EntityRow{row}, nil)
	records.EXPECT().GetRecord(ctx, "e1").Return(previous, nil)
	records.EXPECT().SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.StoreRecord) error {
			assert.True(t, record.Deleted, "the tombstone must reach the record")
			assert.NotEqual(t, previous.Version, record.Version,
				"a deletion is a new version even though the payload bytes are unchanged")
			assert.Equal(t, []string{previous.Version}, record.History,
				"history holds the replaced live version, never the tombstone's own tag")
			return nil
		})
	entities.EXPECT().SetDirty(ctx, []string{"e1"}, false).Return(nil)

	produced, err := svc.SerializeDirty(ctx, "")

	require.NoError(t, err)
	assert.Equal(t, 1, produced)
}

func TestSerializeDirty_DeleteThenRestoreAlternatesVersions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, entities, records := newTestRecordSvc(t, ctrl, 1)
	ctx := context.Background()

	payload := json.RawMessage(`{"facility":"f1","id":"e1","model":"visittally","visits":3}`)
	liveTag := utils.VersionTag(payload, false)
	tombstoneTag := utils.VersionTag(payload, true)
	require.NotEqual(t, liveTag, tombstoneTag)

	// Round one: the entity was deleted since the live version was captured.
	stored := models.StoreRecord{ID: "e1", Version: liveTag, Counters: models.CounterMap{"A": 1}}
	entities.EXPECT().ListDirty(ctx, "").Return([]store.EntityRow{{ID: "e1", Model: "visittally", Payload: payload, Dirty: true, Deleted: true}}, nil)
	records.EXPECT().GetRecord(ctx, "e1").Return(stored, nil)
	records.EXPECT().SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.StoreRecord) error {
			assert.Equal(t, tombstoneTag, record.Version)
			stored = record
			return nil
		})
	entities.EXPECT().SetDirty(ctx, []string{"e1"}, false).Return(nil)

	produced, err := svc.SerializeDirty(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, produced)

	// Round two: the same payload is restored. The live tag comes back as a
	// third distinct version with the tombstone in its history.
	entities.EXPECT().ListDirty(ctx, "").Return([]store.EntityRow{{ID: "e1", Model: "visittally", Payload: payload, Dirty: true}}, nil)
	records.EXPECT().GetRecord(ctx, "e1").Return(stored, nil)
	records.EXPECT().SaveRecord(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.StoreRecord) error {
			assert.False(t, record.Deleted)
			assert.Equal(t, liveTag, record.Version)
			assert.Equal(t, []string{liveTag, tombstoneTag}, record.History)
			return nil
		})
	entities.EXPECT().SetDirty(ctx, []string{"e1"}, false).Return(nil)

	produced, err = svc.SerializeDirty(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, produced)
}

func TestBulkUpdate_UnknownModelFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _ := newTestRecordSvc(t, ctrl, 0)

	_, err := svc.BulkUpdate(context.Background(), "nosuchmodel", "", map[string]any{"visits": 0})

	assert.Error(t, err)
}

func TestDelete_RequiresID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, _ := newTestRecordSvc(t, ctrl, 0)

	assert.ErrorIs(t, svc.Delete(context.Background(), ""), ErrInvalidDataProvided)
}
