package ports

import (
	"context"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// UserDirectory looks users up by email. Implementations return
// domain.ErrUserNotFound when no record matches.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserStore is a UserDirectory that can also enroll users.
type UserStore interface {
	UserDirectory
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// CredentialMatcher compares a plaintext password against a stored hash.
// A mismatch is (false, nil); an error means the hash could not be checked.
type CredentialMatcher interface {
	Matches(ctx context.Context, plaintext, hash string) (bool, error)
}

// TokenIssuer mints an opaque access token for a user id.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string) (string, error)
}

// EmailFormatChecker reports whether a string is a syntactically valid email.
type EmailFormatChecker interface {
	IsValid(email string) bool
}
