package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

type fakeSessionRepo struct {
	sessions map[string]*entities.TriageSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entities.TriageSession)}
}

func (r *fakeSessionRepo) Save(_ context.Context, session *entities.TriageSession) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*entities.TriageSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("triage session not found")
	}
	return session, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

type fakeTriageModel struct {
	replyErr   error
	assessErr  error
	assessment *entities.TriageAssessment
	assessed   int
}

func (m *fakeTriageModel) Reply(_ context.Context, history []entities.TriageMessage) (string, error) {
	if m.replyErr != nil {
		return "", m.replyErr
	}
	return fmt.Sprintf("Tell me more (turn %d).", len(history)), nil
}

func (m *fakeTriageModel) Assess(_ context.Context, _ []entities.TriageMessage) (*entities.TriageAssessment, error) {
	m.assessed++
	if m.assessErr != nil {
		return nil, m.assessErr
	}
	if m.assessment != nil {
		return m.assessment, nil
	}
	return &entities.TriageAssessment{
		Severity:       entities.SeverityUrgent,
		Recommendation: "Visit a clinic today.",
		FacilityType:   entities.FacilityTypeClinic,
	}, nil
}

func TestStartSession(t *testing.T) {
	repo := newFakeSessionRepo()
	service := NewTriageService(repo, &fakeTriageModel{})

	session, err := service.StartSession(context.Background(), "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, entities.TriageStatusActive, session.Status)
	assert.Zero(t, session.UserTurns)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, entities.TriageRoleAssistant, session.Messages[0].Role)
	assert.Contains(t, session.Messages[0].Content, "not a doctor")
	assert.Contains(t, repo.sessions, session.ID)
}

func TestStartSession_RequiresUserID(t *testing.T) {
	service := NewTriageService(newFakeSessionRepo(), &fakeTriageModel{})

	_, err := service.StartSession(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestSendMessage_AppendsBothTurns(t *testing.T) {
	repo := newFakeSessionRepo()
	service := NewTriageService(repo, &fakeTriageModel{})

	session, err := service.StartSession(context.Background(), "user-1")
	require.NoError(t, err)

	updated, err := service.SendMessage(context.Background(), session.ID, "I have a headache")
	require.NoError(t, err)

	assert.Equal(t, 1, updated.UserTurns)
	require.Len(t, updated.Messages, 3)
	assert.Equal(t, entities.TriageRoleUser, updated.Messages[1].Role)
	assert.Equal(t, "I have a headache", updated.Messages[1].Content)
	assert.Equal(t, entities.TriageRoleAssistant, updated.Messages[2].Role)
	assert.Equal(t, entities.TriageStatusActive, updated.Status)
	assert.Nil(t, updated.Assessment)
}

func TestSendMessage_AssessesOnFifthTurn(t *testing.T) {
	repo := newFakeSessionRepo()
	model := &fakeTriageModel{}
	service := NewTriageService(repo, model)

	session, err := service.StartSession(context.Background(), "user-1")
	require.NoError(t, err)

	var updated *entities.TriageSession
	for i := 1; i <= 5; i++ {
		updated, err = service.SendMessage(context.Background(), session.ID, fmt.Sprintf("symptom detail %d", i))
		require.NoError(t, err)

		if i < 5 {
			assert.Equal(t, entities.TriageStatusActive, updated.Status, "turn %d", i)
			assert.Nil(t, updated.Assessment, "turn %d", i)
		}
	}

	assert.Equal(t, 1, model.assessed)
	assert.Equal(t, entities.TriageStatusAssessed, updated.Status)
	require.NotNil(t, updated.Assessment)
	assert.Equal(t, entities.SeverityUrgent, updated.Assessment.Severity)
	assert.Equal(t, entities.FacilityTypeClinic, updated.Assessment.FacilityType)
}

func TestSendMessage_AssessedSessionRejectsMessages(t *testing.T) {
	repo := newFakeSessionRepo()
	service := NewTriageService(repo, &fakeTriageModel{})

	session, err := service.StartSession(context.Background(), "user-1")
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		_, err = service.SendMessage(context.Background(), session.ID, "symptom detail")
		require.NoError(t, err)
	}

	_, err = service.SendMessage(context.Background(), session.ID, "one more thing")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
}

func TestSendMessage_AssessFailureKeepsSessionActive(t *testing.T) {
	repo := newFakeSessionRepo()
	model := &fakeTriageModel{assessErr: errors.New("model timeout")}
	service := NewTriageService(repo, model)

	session, err := service.StartSession(context.Background(), "user-1")
	require.NoError(t, err)
	var updated *entities.TriageSession
	for i := 1; i <= 5; i++ {
		updated, err = service.SendMessage(context.Background(), session.ID, "symptom detail")
		require.NoError(t, err)
	}

	assert.Equal(t, entities.TriageStatusActive, updated.Status)
	assert.Nil(t, updated.Assessment)

	// The next turn retries the assessment.
	model.assessErr = nil
	updated, err = service.SendMessage(context.Background(), session.ID, "still unwell")
	require.NoError(t, err)
	assert.Equal(t, entities.TriageStatusAssessed, updated.Status)
	require.NotNil(t, updated.Assessment)
}

func TestSendMessage_ReplyFailure(t *testing.T) {
	repo := newFakeSessionRepo()
	service := NewTriageService(repo, &fakeTriageModel{replyErr: errors.New("connection reset")})

	session, err := service.StartSession(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = service.SendMessage(context.Background(), session.ID, "I have a headache")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
}

func TestSendMessage_EmptyContent(t *testing.T) {
	service := NewTriageService(newFakeSessionRepo(), &fakeTriageModel{})

	_, err := service.SendMessage(context.Background(), "any", "   ")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestSendMessage_UnknownSession(t *testing.T) {
	service := NewTriageService(newFakeSessionRepo(), &fakeTriageModel{})

	_, err := service.SendMessage(context.Background(), "missing", "hello")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.TypeOf(err))
}
