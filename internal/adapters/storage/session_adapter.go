package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	"github.com/healthconnect/navigator-api/internal/domain/repositories"
	redisclient "github.com/healthconnect/navigator-api/internal/infrastructure/clients/redis"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

// sessionTTL bounds how long an abandoned triage transcript survives
const sessionTTL = 24 * time.Hour

// SessionAdapter implements SessionRepository on Redis with a rolling TTL
type SessionAdapter struct {
	client *redisclient.Client
}

// NewSessionAdapter creates a new Redis-backed session repository
func NewSessionAdapter(client *redisclient.Client) repositories.SessionRepository {
	return &SessionAdapter{client: client}
}

func sessionKey(id string) string {
	return "hc:triage:session:" + id
}

// Save persists a session and refreshes its TTL
func (a *SessionAdapter) Save(ctx context.Context, session *entities.TriageSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return apperrors.NewInternalError("failed to encode triage session", err)
	}
	if err := a.client.Client().Set(ctx, sessionKey(session.ID), payload, sessionTTL).Err(); err != nil {
		return apperrors.NewInternalError("failed to store triage session", err)
	}
	return nil
}

// GetByID retrieves a session
func (a *SessionAdapter) GetByID(ctx context.Context, id string) (*entities.TriageSession, error) {
	payload, err := a.client.Client().Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NewNotFoundError("triage session not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load triage session", err)
	}

	var session entities.TriageSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, apperrors.NewInternalError("failed to decode triage session", err)
	}
	return &session, nil
}

// Delete removes a session
func (a *SessionAdapter) Delete(ctx context.Context, id string) error {
	if err := a.client.Client().Del(ctx, sessionKey(id)).Err(); err != nil {
		return apperrors.NewInternalError("failed to delete triage session", err)
	}
	return nil
}
