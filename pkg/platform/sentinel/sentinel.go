package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors without knowing
// which backend produced them.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrDuplicateSerial / ErrDuplicateIMEI: a unique identity field collided
// - ErrConflict: a uniqueness constraint failed on an unidentified key
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateSerial = errors.New("duplicate serial number")
	ErrDuplicateIMEI   = errors.New("duplicate imei")
	ErrConflict        = errors.New("conflict")
)
