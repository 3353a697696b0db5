package registry

import (
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-peer-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *facilityRecord {
	return &facilityRecord{
		Base:     models.Base{ID: "r1"},
		Facility: "123",
		Name:     "north clinic",
		Visits:   7,
		Notes:    "local scratchpad",
	}
}

func TestSerialize_FieldSetAndTypeTag(t *testing.T) {
	r := newFacilityRegistry(t)

	payload, err := r.Serialize(sampleRecord(), nil)
	require.NoError(t, err)

	var data map[string]any
	require.NoError(t, json.Unmarshal(payload, &data))

	assert.Equal(t, "facilityrecord", data["model"])
	assert.Equal(t, "r1", data["id"])
	assert.Equal(t, "north clinic", data["name"])
	assert.Equal(t, float64(7), data["visits"])
	// sync:"-" fields and the dirty bit never leave the device.
	assert.NotContains(t, data, "notes")
	assert.NotContains(t, data, "dirty")
}

func TestSerialize_IncludeWinsOverExclude(t *testing.T) {
	r := newFacilityRegistry(t)

	payload, err := r.Serialize(sampleRecord(), &SerializeOptions{
		Fields:  []string{"name"},
		Exclude: []string{"name"},
	})
	require.NoError(t, err)

	var data map[string]any
	require.NoError(t, json.Unmarshal(payload, &data))

	assert.Contains(t, data, "name")
	assert.NotContains(t, data, "visits")
	assert.Contains(t, data, "model") // type tag is always appended
}

func TestSerialize_ExcludeList(t *testing.T) {
	r := newFacilityRegistry(t)

	payload, err := r.Serialize(sampleRecord(), &SerializeOptions{Exclude: []string{"visits"}})
	require.NoError(t, err)

	var data map[string]any
	require.NoError(t, json.Unmarshal(payload, &data))

	assert.NotContains(t, data, "visits")
	assert.Contains(t, data, "name")
}

func TestDeserialize_RoundTripStability(t *testing.T) {
	r := newFacilityRegistry(t)

	first, err := r.Serialize(sampleRecord(), nil)
	require.NoError(t, err)

	entity, err := r.Deserialize(first)
	require.NoError(t, err)

	second, err := r.Serialize(entity, nil)
	require.NoError(t, err)

	// serialize(deserialize(serialize(R))) == serialize(R)
	assert.JSONEq(t, string(first), string(second))
}

func TestDeserialize_ForwardCompatibility(t *testing.T) {
	r := newFacilityRegistry(t)

	// Unknown fields are ignored, missing fields take type defaults.
	payload := json.RawMessage(`{"model":"facilityrecord","id":"r2","facility":"9","from_the_future":true}`)

	entity, err := r.Deserialize(payload)
	require.NoError(t, err)

	record, ok := entity.(*facilityRecord)
	require.True(t, ok)
	assert.Equal(t, "r2", record.ID)
	assert.Equal(t, "9", record.Facility)
	assert.Zero(t, record.Visits)
	assert.Empty(t, record.Name)
}

func TestDeserialize_UnknownModel(t *testing.T) {
	r := newFacilityRegistry(t)

	_, err := r.Deserialize(json.RawMessage(`{"model":"ghost","id":"r1"}`))
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestDeserialize_InvalidPayload(t *testing.T) {
	r := newFacilityRegistry(t)

	_, err := r.Deserialize(json.RawMessage(`[1,2,3]`))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = r.Deserialize(json.RawMessage(`{"id":"r1"}`))
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestDeserializeInto_TypeMismatch(t *testing.T) {
	r := newFacilityRegistry(t)

	payload := json.RawMessage(`{"model":"somethingelse","id":"r1"}`)

	err := r.DeserializeInto(payload, &facilityRecord{})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestDeserializeInto_PopulatesTarget(t *testing.T) {
	r := newFacilityRegistry(t)

	target := &facilityRecord{Visits: 3}
	payload := json.RawMessage(`{"model":"facilityrecord","id":"r1","name":"updated"}`)

	require.NoError(t, r.DeserializeInto(payload, target))
	assert.Equal(t, "r1", target.ID)
	assert.Equal(t, "updated", target.Name)
	// Fields absent from the payload are left as they were.
	assert.Equal(t, int64(3), target.Visits)
}
