package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

const loginAttemptsCollection = "login_attempts"

// AuditRepository implements ports.LoginAuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.LoginAuditRepository {
	return &AuditRepository{col: db.Collection(loginAttemptsCollection)}
}

// InsertAttempt appends a login attempt to the audit collection.
func (r *AuditRepository) InsertAttempt(ctx context.Context, attempt *domain.LoginAttempt) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"email":       attempt.Email,
		"outcome":     string(attempt.Outcome),
		"status_code": attempt.StatusCode,
		"at":          attempt.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if attempt.RemoteIP != "" {
		doc["remote_ip"] = attempt.RemoteIP
	}
	if attempt.UserAgent != "" {
		doc["user_agent"] = attempt.UserAgent
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
