package registry

import (
	"testing"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// facilityRecord is the entity type used across registry tests.
type facilityRecord struct {
	models.Base
	Facility string `json:"facility" sync:"facility"`
	Name     string `json:"name" sync:"name"`
	Visits   int64  `json:"visits" sync:"visits"`
	Notes    string `json:"notes" sync:"-"` // local-only, never serialized
}

func (f *facilityRecord) ModelName() string { return "facilityrecord" }

func (f *facilityRecord) PartitionKeys() []string {
	return []string{"facility/" + f.Facility}
}

// namelessRecord violates the syncable contract: no model name.
type namelessRecord struct {
	models.Base
}

func (n *namelessRecord) ModelName() string       { return "" }
func (n *namelessRecord) PartitionKeys() []string { return []string{"x"} }

// unpartitionedRecord violates the syncable contract: no partition keys.
type unpartitionedRecord struct {
	models.Base
}

func (u *unpartitionedRecord) ModelName() string       { return "unpartitioned" }
func (u *unpartitionedRecord) PartitionKeys() []string { return nil }

func newFacilityRegistry(t *testing.T) *Registry {
	t.Helper()

	r := New(logger.Nop())
	require.NoError(t, r.Register(Registration{
		New: func() models.Syncable { return &facilityRecord{} },
	}))

	return r
}

func TestRegistry_Register(t *testing.T) {
	r := newFacilityRegistry(t)

	// Duplicate model names are rejected.
	err := r.Register(Registration{New: func() models.Syncable { return &facilityRecord{} }})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegistry_Register_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		reg  Registration
	}{
		{"nil factory", Registration{}},
		{"nil prototype", Registration{New: func() models.Syncable { return nil }}},
		{"empty model name", Registration{New: func() models.Syncable { return &namelessRecord{} }}},
		{"no partition keys", Registration{New: func() models.Syncable { return &unpartitionedRecord{} }}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(logger.Nop())
			assert.ErrorIs(t, r.Register(tt.reg), ErrNotImplemented)
		})
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := newFacilityRegistry(t)

	reg, err := r.Lookup("facilityrecord")
	require.NoError(t, err)
	assert.NotNil(t, reg.New)

	_, err = r.Lookup("ghost")
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestRegistry_MergeHook(t *testing.T) {
	r := New(logger.Nop())

	current := models.StoreRecord{ID: "r1", Version: "local"}
	incoming := models.StoreRecord{ID: "r1", Version: "remote"}

	// Unregistered models fall back to the remote-wins default.
	resolved := r.MergeHook("ghost")(current, incoming)
	assert.Equal(t, "remote", resolved.Version)

	// Registered overrides replace the default.
	require.NoError(t, r.Register(Registration{
		New: func() models.Syncable { return &facilityRecord{} },
		Merge: func(current, incoming models.StoreRecord) models.StoreRecord {
			return current // local-wins override
		},
	}))

	resolved = r.MergeHook("facilityrecord")(current, incoming)
	assert.Equal(t, "local", resolved.Version)
}
