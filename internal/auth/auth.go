package auth

// Service checks admin credentials against the configured pair. Comparison
// is verbatim equality; there is no lockout or attempt counter.
type Service struct {
	username string
	password string
}

func New(username, password string) *Service {
	return &Service{username: username, password: password}
}

func (s *Service) Check(username, password string) bool {
	return username == s.username && password == s.password
}
