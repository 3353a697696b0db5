package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCertificatePayload_ScopeContains(t *testing.T) {
	tests := []struct {
		name      string
		scope     string
		partition string
		want      bool
	}{
		{"wildcard covers child partition", "facility/*", "facility/123", true},
		{"wildcard covers nested partition", "facility/*", "facility/123/records", true},
		{"wildcard does not cover sibling tree", "facility/*", "district/9", false},
		{"exact scope covers itself", "facility/123", "facility/123", true},
		{"exact scope covers sub-partitions", "facility/123", "facility/123/records", true},
		{"exact scope does not cover siblings", "facility/123", "facility/124", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CertificatePayload{Scope: tt.scope}
			assert.Equal(t, tt.want, p.ScopeContains(tt.partition))
		})
	}
}

func TestCertificatePayload_ScopeWithin(t *testing.T) {
	root := "facility/*"

	assert.True(t, CertificatePayload{Scope: "facility/123"}.ScopeWithin(root))
	assert.True(t, CertificatePayload{Scope: "facility/*"}.ScopeWithin(root))
	// A certificate must not claim broader authority than its issuer holds.
	assert.False(t, CertificatePayload{Scope: "district/*"}.ScopeWithin(root))
	assert.False(t, CertificatePayload{Scope: "*"}.ScopeWithin(root))
}

func TestCertificatePayload_Operations(t *testing.T) {
	issuer := CertificatePayload{Operations: []string{OperationRead, OperationWrite}}
	readOnly := CertificatePayload{Operations: []string{OperationRead}}

	assert.True(t, readOnly.Allows(OperationRead))
	assert.False(t, readOnly.Allows(OperationWrite))
	assert.True(t, readOnly.OperationsWithin(issuer))
	assert.False(t, issuer.OperationsWithin(readOnly))
}

func TestCertificate_IsSelfSigned(t *testing.T) {
	assert.True(t, Certificate{Signature: "abc", IssuerSignature: "abc"}.IsSelfSigned())
	assert.False(t, Certificate{Signature: "abc", IssuerSignature: "def"}.IsSelfSigned())
	assert.False(t, Certificate{}.IsSelfSigned())
}

func TestStoreRecord_InPartition(t *testing.T) {
	rec := StoreRecord{Partitions: []string{"facility/123", "user/7"}}

	assert.True(t, rec.InPartition(""))
	assert.True(t, rec.InPartition("facility/"))
	assert.True(t, rec.InPartition("user/7"))
	assert.False(t, rec.InPartition("district/"))
}
