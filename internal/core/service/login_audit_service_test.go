package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
)

type stubAuditRepo struct {
	insertErr error
	inserted  []*domain.LoginAttempt
}

func (r *stubAuditRepo) InsertAttempt(_ context.Context, a *domain.LoginAttempt) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, a)
	return nil
}

func TestLoginAuditService_Record_Normalises(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewLoginAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.LoginAttempt{
		Email:      "  Alice@Example.COM ",
		Outcome:    domain.OutcomeUnauthorized,
		StatusCode: 401,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(repo.inserted))
	}
	got := repo.inserted[0]
	if got.Email != "alice@example.com" {
		t.Errorf("email not normalised: %q", got.Email)
	}
	if got.At.IsZero() {
		t.Errorf("expected timestamp to be set")
	}
}

func TestLoginAuditService_Record_KeepsTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewLoginAuditService(repo, zerolog.Nop())
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := svc.Record(context.Background(), domain.LoginAttempt{Email: "a@b.co", At: at}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.inserted[0].At.Equal(at) {
		t.Errorf("timestamp overwritten: %v", repo.inserted[0].At)
	}
}

func TestLoginAuditService_Record_RepoError(t *testing.T) {
	boom := errors.New("write failed")
	svc := NewLoginAuditService(&stubAuditRepo{insertErr: boom}, zerolog.Nop())

	err := svc.Record(context.Background(), domain.LoginAttempt{Email: "a@b.co"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
