package ports

import (
	"context"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// LoginAuditRepository persists login attempts.
type LoginAuditRepository interface {
	InsertAttempt(ctx context.Context, attempt *domain.LoginAttempt) error
}

// LoginAuditService handles a single login attempt record.
type LoginAuditService interface {
	Record(ctx context.Context, attempt domain.LoginAttempt) error
}
