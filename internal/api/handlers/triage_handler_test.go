package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthconnect/navigator-api/internal/api/handlers"
	"github.com/healthconnect/navigator-api/internal/domain/entities"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

type stubTriage struct {
	session *entities.TriageSession
	err     error
}

func (s *stubTriage) StartSession(_ context.Context, userID string) (*entities.TriageSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubTriage) GetSession(_ context.Context, _ string) (*entities.TriageSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubTriage) SendMessage(_ context.Context, _, _ string) (*entities.TriageSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func TestStartSession_Created(t *testing.T) {
	stub := &stubTriage{session: &entities.TriageSession{ID: "s1", UserID: "u1", Status: entities.TriageStatusActive}}
	handler := handlers.NewTriageHandler(stub)

	req := httptest.NewRequest("POST", "/api/triage/sessions", strings.NewReader(`{"user_id":"u1"}`))
	w := httptest.NewRecorder()
	handler.StartSession(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var session entities.TriageSession
	require.NoError(t, json.NewDecoder(w.Body).Decode(&session))
	assert.Equal(t, "s1", session.ID)
}

func TestStartSession_InvalidBody(t *testing.T) {
	handler := handlers.NewTriageHandler(&stubTriage{})

	req := httptest.NewRequest("POST", "/api/triage/sessions", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	handler.StartSession(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	stub := &stubTriage{err: apperrors.NewNotFoundError("triage session not found")}
	handler := handlers.NewTriageHandler(stub)

	req := httptest.NewRequest("GET", "/api/triage/sessions/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.GetSession(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendMessage_AssessedSessionConflicts(t *testing.T) {
	stub := &stubTriage{err: apperrors.NewConflictError("triage session is already assessed")}
	handler := handlers.NewTriageHandler(stub)

	req := httptest.NewRequest("POST", "/api/triage/sessions/s1/messages", strings.NewReader(`{"content":"hi"}`))
	req.SetPathValue("id", "s1")
	w := httptest.NewRecorder()
	handler.SendMessage(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSendMessage_ModelFailure(t *testing.T) {
	stub := &stubTriage{err: apperrors.NewExternalError("triage model request failed", nil)}
	handler := handlers.NewTriageHandler(stub)

	req := httptest.NewRequest("POST", "/api/triage/sessions/s1/messages", strings.NewReader(`{"content":"hi"}`))
	req.SetPathValue("id", "s1")
	w := httptest.NewRecorder()
	handler.SendMessage(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
