package repositories

import (
	"context"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
)

// SessionRepository defines the interface for triage session storage
type SessionRepository interface {
	// Save persists a session (create or replace)
	Save(ctx context.Context, session *entities.TriageSession) error

	// GetByID retrieves a session
	GetByID(ctx context.Context, id string) (*entities.TriageSession, error)

	// Delete removes a session
	Delete(ctx context.Context, id string) error
}
