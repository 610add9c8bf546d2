package health

// LogoChecker reports whether an institutional logo is stored.
type LogoChecker interface {
	Exists() bool
}

// Service encapsulates liveness and status reporting.
type Service struct {
	logo LogoChecker
}

// NewService constructs a health service over the given logo store.
func NewService(logo LogoChecker) *Service {
	return &Service{logo: logo}
}

// Root returns the service banner with the logo-presence flag.
func (s *Service) Root() map[string]any {
	return map[string]any{
		"message":       "Lab Record Generator API",
		"status":        "running",
		"version":       "1.0",
		"logo_uploaded": s.logo.Exists(),
	}
}

// Status returns a trivial liveness payload.
func (s *Service) Status() map[string]string {
	return map[string]string{"status": "healthy"}
}
