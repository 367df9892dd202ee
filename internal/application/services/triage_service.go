package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	"github.com/healthconnect/navigator-api/internal/domain/providers"
	"github.com/healthconnect/navigator-api/internal/domain/repositories"
	"github.com/healthconnect/navigator-api/internal/infrastructure/observability"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

// assessmentTurn is the user-turn count after which a structured assessment
// is produced and the session closes.
const assessmentTurn = 5

const openingMessage = "Hello! I can help you think through your symptoms and find the right kind of " +
	"care nearby. I'm not a doctor, and this is not a diagnosis. What symptoms are you experiencing?"

// TriageService manages symptom triage sessions: a linear transcript per
// session, one model reply per user turn, and an automatic assessment after a
// fixed number of turns. All reasoning is delegated to the TriageProvider.
type TriageService struct {
	sessions repositories.SessionRepository
	model    providers.TriageProvider
}

// NewTriageService creates a new triage service
func NewTriageService(sessions repositories.SessionRepository, model providers.TriageProvider) *TriageService {
	return &TriageService{
		sessions: sessions,
		model:    model,
	}
}

// StartSession opens a new session with the standard opening message
func (s *TriageService) StartSession(ctx context.Context, userID string) (*entities.TriageSession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	now := time.Now().UTC()
	session := &entities.TriageSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Status: entities.TriageStatusActive,
		Messages: []entities.TriageMessage{
			{Role: entities.TriageRoleAssistant, Content: openingMessage, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a session by ID
func (s *TriageService) GetSession(ctx context.Context, sessionID string) (*entities.TriageSession, error) {
	return s.sessions.GetByID(ctx, sessionID)
}

// SendMessage appends a user turn, obtains the assistant's reply, and — on
// the assessment turn — also requests the structured assessment and marks the
// session assessed.
func (s *TriageService) SendMessage(ctx context.Context, sessionID, content string) (*entities.TriageSession, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content is required")
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == entities.TriageStatusAssessed {
		return nil, apperrors.NewConflictError("triage session is already assessed")
	}

	now := time.Now().UTC()
	session.Messages = append(session.Messages, entities.TriageMessage{
		Role:      entities.TriageRoleUser,
		Content:   content,
		CreatedAt: now,
	})
	session.UserTurns++

	reply, err := s.model.Reply(ctx, session.Messages)
	if err != nil {
		return nil, apperrors.NewExternalError("triage model request failed", err)
	}
	session.Messages = append(session.Messages, entities.TriageMessage{
		Role:      entities.TriageRoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	})

	if session.UserTurns >= assessmentTurn {
		assessment, err := s.model.Assess(ctx, session.Messages)
		if err != nil {
			// The conversation itself succeeded; keep the session open and
			// try to assess again on the next turn.
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("session_id", session.ID).
				Msg("triage assessment failed, session stays active")
		} else {
			session.Assessment = assessment
			session.Status = entities.TriageStatusAssessed
		}
	}

	session.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
