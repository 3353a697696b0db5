package store

import "errors"

var (
	// ErrRecordNotFound is returned when no store record exists for the
	// requested identity.
	ErrRecordNotFound = errors.New("store record not found")
	// ErrEntityNotFound is returned when no entity row exists for the
	// requested identity.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrCertificateNotFound is returned when no certificate exists for the
	// requested signature.
	ErrCertificateNotFound = errors.New("certificate not found")

	ErrBuildingSQLQuery     = errors.New("error building SQL query")
	ErrExecutingQuery       = errors.New("error executing query")
	ErrBeginningTransaction = errors.New("error beginning transaction")
	ErrCommitingTransaction = errors.New("error commiting transaction")
	ErrScanningRow          = errors.New("error scanning row")
	ErrScanningRows         = errors.New("error scanning rows")
)
