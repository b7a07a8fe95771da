package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

type loginAuditService struct {
	repo ports.LoginAuditRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewLoginAuditService returns a LoginAuditService that normalises attempts
// and writes them to repo.
func NewLoginAuditService(repo ports.LoginAuditRepository, log zerolog.Logger) ports.LoginAuditService {
	return &loginAuditService{repo: repo, log: log, now: time.Now}
}

// Record stores one login attempt. Emails are lowercased so that attempts
// against the same account group together.
func (s *loginAuditService) Record(ctx context.Context, attempt domain.LoginAttempt) error {
	attempt.Email = strings.ToLower(strings.TrimSpace(attempt.Email))
	if attempt.At.IsZero() {
		attempt.At = s.now().UTC()
	}

	if err := s.repo.InsertAttempt(ctx, &attempt); err != nil {
		return fmt.Errorf("record login attempt: %w", err)
	}

	s.log.Debug().
		Str("outcome", string(attempt.Outcome)).
		Int("status", attempt.StatusCode).
		Msg("login attempt recorded")

	return nil
}
