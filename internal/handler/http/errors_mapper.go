package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-peer-sync/internal/service"
	"github.com/MKhiriev/go-peer-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:  http.StatusBadRequest,
	service.ErrTokenIsExpired:       http.StatusUnauthorized,
	service.ErrBadSignature:         http.StatusUnauthorized,
	service.ErrUntrustedChain:       http.StatusUnauthorized,
	service.ErrScopeViolation:       http.StatusForbidden,
	service.ErrNotCertificateHolder: http.StatusForbidden,
	service.ErrWatermarkRegression:  http.StatusConflict,

	store.ErrRecordNotFound:      http.StatusNotFound,
	store.ErrEntityNotFound:      http.StatusNotFound,
	store.ErrCertificateNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
