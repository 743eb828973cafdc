package health

import "roomrec-backend/internal/artifacts"

// Service reports readiness based on the currently loaded artifact set.
type Service struct {
	Artifacts *artifacts.Holder
}

// NewService constructs a new health service.
func NewService(holder *artifacts.Holder) *Service {
	return &Service{Artifacts: holder}
}

// Status returns the health payload. A missing artifact set reports the
// service as degraded; the process stays up and serves this endpoint so
// operators can see the state.
func (s *Service) Status() map[string]any {
	art := s.Artifacts.Current()
	if art == nil {
		return map[string]any{"ok": false, "status": "degraded"}
	}
	return map[string]any{
		"ok":            true,
		"status":        "ok",
		"model_version": art.Schema.ModelVersion,
		"model_file":    art.ModelFile,
	}
}
