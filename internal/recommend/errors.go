package recommend

import "errors"

var (
	// ErrNotReady means the artifact set is not loaded; the service is
	// degraded and every request fails uniformly until a successful reload.
	ErrNotReady = errors.New("model artifacts not loaded")
	// ErrInference means the classifier or encoder rejected the assembled
	// feature matrix. Deterministic, so never retried.
	ErrInference = errors.New("inference failed")
)

const (
	ErrorCodeValidation  = "validation_error"
	ErrorCodeUnavailable = "service_unavailable"
	ErrorCodeInference   = "inference_error"
	ErrorCodeInternal    = "internal_error"
)
