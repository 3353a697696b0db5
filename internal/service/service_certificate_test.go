package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-peer-sync/internal/crypto"
	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/store"
	"github.com/MKhiriev/go-peer-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCertStore is an in-memory CertificateRepository for chain tests.
type fakeCertStore struct {
	certs map[string]models.Certificate
}

func newFakeCertStore() *fakeCertStore {
	return &fakeCertStore{certs: make(map[string]models.Certificate)}
}

func (f *fakeCertStore) SaveCertificate(_ context.Context, cert models.Certificate) error {
	if _, exists := f.certs[cert.Signature]; !exists {
		f.certs[cert.Signature] = cert
	}
	return nil
}

func (f *fakeCertStore) GetCertificate(_ context.Context, signature string) (models.Certificate, error) {
	cert, ok := f.certs[signature]
	if !ok {
		return models.Certificate{}, store.ErrCertificateNotFound
	}
	return cert, nil
}

func (f *fakeCertStore) MarkTrusted(_ context.Context, signature string) error {
	cert, ok := f.certs[signature]
	if !ok {
		return store.ErrCertificateNotFound
	}
	cert.Trusted = true
	f.certs[signature] = cert
	return nil
}

func newKeys(t *testing.T, fill byte) crypto.KeyRingService {
	t.Helper()
	keys, err := crypto.NewKeyRing(bytes.Repeat([]byte{fill}, 32))
	require.NoError(t, err)
	return keys
}

func newTestCertSvc(t *testing.T, keys crypto.KeyRingService) (*certificateService, *fakeCertStore) {
	t.Helper()
	certs := newFakeCertStore()
	storages := &store.Storages{Certificates: certs}
	svc := NewCertificateService(storages, keys, logger.Nop()).(*certificateService)
	return svc, certs
}

func TestIssueRoot_MintsTrustedSelfSignedCertificate(t *testing.T) {
	hubKeys := newKeys(t, 1)
	svc, certs := newTestCertSvc(t, hubKeys)
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationRead, models.OperationWrite})
	require.NoError(t, err)

	assert.True(t, root.IsSelfSigned())
	assert.Equal(t, hubKeys.PublicKeyHex(), root.Payload.PublicKey)

	stored, err := certs.GetCertificate(ctx, root.Signature)
	require.NoError(t, err)
	assert.True(t, stored.Trusted)
}

func TestIssueRoot_RemintConvergesOnOneRoot(t *testing.T) {
	// Startup seeds the trust store by re-minting the root on every boot.
	// Ed25519 signatures are deterministic, so the second mint must produce
	// the same certificate instead of a competing root.
	svc, certs := newTestCertSvc(t, newKeys(t, 1))
	ctx := context.Background()

	first, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationRead, models.OperationWrite})
	require.NoError(t, err)
	second, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationRead, models.OperationWrite})
	require.NoError(t, err)

	assert.Equal(t, first.Signature, second.Signature)
	assert.Len(t, certs.certs, 1, "re-minting must not accumulate roots")

	stored, err := certs.GetCertificate(ctx, first.Signature)
	require.NoError(t, err)
	assert.True(t, stored.Trusted)
}

func TestIssue_SubordinateWithinScope(t *testing.T) {
	hubKeys := newKeys(t, 1)
	deviceKeys := newKeys(t, 2)
	svc, _ := newTestCertSvc(t, hubKeys)
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationRead, models.OperationWrite})
	require.NoError(t, err)

	leaf, err := svc.Issue(ctx, root.Signature, models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/facility-9/*",
		Operations: []string{models.OperationWrite},
		PublicKey:  deviceKeys.PublicKeyHex(),
	})
	require.NoError(t, err)

	assert.Equal(t, root.Signature, leaf.IssuerSignature)
	assert.False(t, leaf.IsSelfSigned())
}

func TestIssue_RefusesBroaderScope(t *testing.T) {
	hubKeys := newKeys(t, 1)
	svc, _ := newTestCertSvc(t, hubKeys)
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/facility-9/*", []string{models.OperationWrite})
	require.NoError(t, err)

	_, err = svc.Issue(ctx, root.Signature, models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/*",
		Operations: []string{models.OperationWrite},
		PublicKey:  newKeys(t, 2).PublicKeyHex(),
	})

	assert.ErrorIs(t, err, ErrScopeViolation)
}

func TestIssue_RefusesBroaderOperations(t *testing.T) {
	hubKeys := newKeys(t, 1)
	svc, _ := newTestCertSvc(t, hubKeys)
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationRead})
	require.NoError(t, err)

	_, err = svc.Issue(ctx, root.Signature, models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/facility-9/*",
		Operations: []string{models.OperationWrite},
		PublicKey:  newKeys(t, 2).PublicKeyHex(),
	})

	assert.ErrorIs(t, err, ErrScopeViolation)
}

func TestIssue_RequiresHoldingIssuerKey(t *testing.T) {
	hubKeys := newKeys(t, 1)
	hubSvc, hubCerts := newTestCertSvc(t, hubKeys)
	ctx := context.Background()

	root, err := hubSvc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationWrite})
	require.NoError(t, err)

	// A different instance holding the same store but a different key.
	strangerSvc := &certificateService{logger: logger.Nop(), keys: newKeys(t, 3), certs: hubCerts}

	_, err = strangerSvc.Issue(ctx, root.Signature, models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/facility-9/*",
		Operations: []string{models.OperationWrite},
		PublicKey:  newKeys(t, 2).PublicKeyHex(),
	})

	assert.ErrorIs(t, err, ErrNotCertificateHolder)
}

func TestValidate_AcceptsChainToTrustedRoot(t *testing.T) {
	hubKeys := newKeys(t, 1)
	svc, _ := newTestCertSvc(t, hubKeys)
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationRead, models.OperationWrite})
	require.NoError(t, err)
	leaf, err := svc.Issue(ctx, root.Signature, models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/facility-9/*",
		Operations: []string{models.OperationWrite},
		PublicKey:  newKeys(t, 2).PublicKeyHex(),
	})
	require.NoError(t, err)

	validated, err := svc.Validate(ctx, []models.Certificate{leaf, root})

	require.NoError(t, err)
	assert.Equal(t, "device-1", validated.Payload.InstanceID)
	assert.Equal(t, "district/facility-9/*", validated.Payload.Scope)
}

func TestValidate_RootOnlyChain(t *testing.T) {
	svc, _ := newTestCertSvc(t, newKeys(t, 1))
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationRead})
	require.NoError(t, err)

	validated, err := svc.Validate(ctx, []models.Certificate{root})

	require.NoError(t, err)
	assert.Equal(t, root.Signature, validated.Signature)
}

func TestValidate_TamperedPayloadFailsSignature(t *testing.T) {
	svc, _ := newTestCertSvc(t, newKeys(t, 1))
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationRead, models.OperationWrite})
	require.NoError(t, err)
	leaf, err := svc.Issue(ctx, root.Signature, models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/facility-9/*",
		Operations: []string{models.OperationWrite},
		PublicKey:  newKeys(t, 2).PublicKeyHex(),
	})
	require.NoError(t, err)

	// Widen the scope in the signed bytes: the signature no longer matches.
	tampered := leaf.Payload
	tampered.Scope = "district/*"
	leaf.Serialized, err = json.Marshal(tampered)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, []models.Certificate{leaf, root})

	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestValidate_UntrustedRootIsRejected(t *testing.T) {
	// The chain is internally consistent, but its root was never added to
	// this validator's trust store.
	foreignSvc, _ := newTestCertSvc(t, newKeys(t, 7))
	ctx := context.Background()

	root, err := foreignSvc.IssueRoot(ctx, "rogue-hub", "district/*", []string{models.OperationWrite})
	require.NoError(t, err)
	leaf, err := foreignSvc.Issue(ctx, root.Signature, models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/facility-9/*",
		Operations: []string{models.OperationWrite},
		PublicKey:  newKeys(t, 2).PublicKeyHex(),
	})
	require.NoError(t, err)

	validatorSvc, _ := newTestCertSvc(t, newKeys(t, 1))

	_, err = validatorSvc.Validate(ctx, []models.Certificate{leaf, root})

	assert.ErrorIs(t, err, ErrUntrustedChain)
}

func TestValidate_ScopeEscalationInChainIsRejected(t *testing.T) {
	svc, _ := newTestCertSvc(t, newKeys(t, 1))
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/facility-9/*", []string{models.OperationWrite})
	require.NoError(t, err)

	// Signed by the right key but claiming more than the issuer holds.
	// Issue() refuses to create such a certificate, so craft it directly.
	escalated, err := svc.sign(models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/*",
		Operations: []string{models.OperationWrite},
		PublicKey:  newKeys(t, 2).PublicKeyHex(),
	})
	require.NoError(t, err)
	escalated.IssuerSignature = root.Signature

	_, err = svc.Validate(ctx, []models.Certificate{escalated, root})

	assert.ErrorIs(t, err, ErrScopeViolation)
}

func TestValidate_CyclicChainTerminates(t *testing.T) {
	svc, _ := newTestCertSvc(t, newKeys(t, 1))
	ctx := context.Background()

	// Two certificates naming each other as issuer: no self-signed root is
	// ever reached, so the hop bound must cut the walk off.
	a, err := svc.sign(models.CertificatePayload{
		InstanceID: "a", Scope: "district/*",
		Operations: []string{models.OperationRead},
		PublicKey:  svc.keys.PublicKeyHex(),
	})
	require.NoError(t, err)
	b, err := svc.sign(models.CertificatePayload{
		InstanceID: "b", Scope: "district/*",
		Operations: []string{models.OperationRead},
		PublicKey:  svc.keys.PublicKeyHex(),
	})
	require.NoError(t, err)
	a.IssuerSignature = b.Signature
	b.IssuerSignature = a.Signature

	_, err = svc.Validate(ctx, []models.Certificate{a, b})

	assert.ErrorIs(t, err, ErrUntrustedChain)
}

func TestValidate_EmptyChainIsInvalid(t *testing.T) {
	svc, _ := newTestCertSvc(t, newKeys(t, 1))

	_, err := svc.Validate(context.Background(), nil)

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestTrust_OnlySelfSignedCertificates(t *testing.T) {
	svc, _ := newTestCertSvc(t, newKeys(t, 1))
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationWrite})
	require.NoError(t, err)
	leaf, err := svc.Issue(ctx, root.Signature, models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/facility-9/*",
		Operations: []string{models.OperationWrite},
		PublicKey:  newKeys(t, 2).PublicKeyHex(),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Trust(ctx, leaf.Signature), ErrInvalidDataProvided)
	assert.NoError(t, svc.Trust(ctx, root.Signature))
}

func TestAuthorize_ScopeAndOperationContainment(t *testing.T) {
	hubKeys := newKeys(t, 1)
	svc, _ := newTestCertSvc(t, hubKeys)
	ctx := context.Background()

	root, err := svc.IssueRoot(ctx, "hub", "district/*", []string{models.OperationRead, models.OperationWrite})
	require.NoError(t, err)
	leaf, err := svc.Issue(ctx, root.Signature, models.CertificatePayload{
		InstanceID: "device-1",
		Scope:      "district/facility-9/*",
		Operations: []string{models.OperationRead},
		PublicKey:  newKeys(t, 2).PublicKeyHex(),
	})
	require.NoError(t, err)

	chain := []models.Certificate{leaf, root}

	assert.NoError(t, svc.Authorize(ctx, chain, "district/facility-9/ward-2", models.OperationRead))

	// partition outside the leaf's scope
	err = svc.Authorize(ctx, chain, "district/facility-4/ward-1", models.OperationRead)
	assert.ErrorIs(t, err, ErrScopeViolation)

	// operation the leaf does not delegate
	err = svc.Authorize(ctx, chain, "district/facility-9/ward-2", models.OperationWrite)
	assert.ErrorIs(t, err, ErrScopeViolation)
}

func TestAuthorize_RequiresValidChain(t *testing.T) {
	svc, _ := newTestCertSvc(t, newKeys(t, 1))

	err := svc.Authorize(context.Background(), nil, "district/facility-9/ward-2", models.OperationRead)

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
