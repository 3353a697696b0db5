package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInstanceIDFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), InstanceIDCtxKey, "device-42")

	instanceID, ok := GetInstanceIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "device-42", instanceID)

	_, ok = GetInstanceIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetScopeFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ScopeCtxKey, "facility/*")

	scope, ok := GetScopeFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "facility/*", scope)

	// Wrong value type is reported as missing.
	ctx = context.WithValue(context.Background(), ScopeCtxKey, 7)
	_, ok = GetScopeFromContext(ctx)
	assert.False(t, ok)
}
