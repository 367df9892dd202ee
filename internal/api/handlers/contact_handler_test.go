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

type stubContactRepo struct {
	contacts map[string][]*entities.EmergencyContact
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{contacts: make(map[string][]*entities.EmergencyContact)}
}

func (r *stubContactRepo) Create(_ context.Context, contact *entities.EmergencyContact) error {
	if contact.ID == "" {
		contact.ID = "generated-id"
	}
	r.contacts[contact.UserID] = append(r.contacts[contact.UserID], contact)
	return nil
}

func (r *stubContactRepo) GetByID(_ context.Context, userID, contactID string) (*entities.EmergencyContact, error) {
	for _, c := range r.contacts[userID] {
		if c.ID == contactID {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("contact not found")
}

func (r *stubContactRepo) ListByUser(_ context.Context, userID string) ([]*entities.EmergencyContact, error) {
	return r.contacts[userID], nil
}

func (r *stubContactRepo) Delete(_ context.Context, userID, contactID string) error {
	for i, c := range r.contacts[userID] {
		if c.ID == contactID {
			r.contacts[userID] = append(r.contacts[userID][:i], r.contacts[userID][i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("contact not found")
}

func TestCreateContact_Success(t *testing.T) {
	repo := newStubContactRepo()
	handler := handlers.NewContactHandler(repo)

	body := `{"name":"Ama Mensah","phone":"0244123456","relationship":"sister","priority":1}`
	req := httptest.NewRequest("POST", "/api/contacts", strings.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	handler.CreateContact(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var contact entities.EmergencyContact
	require.NoError(t, json.NewDecoder(w.Body).Decode(&contact))
	assert.NotEmpty(t, contact.ID)
	assert.Equal(t, "Ama Mensah", contact.Name)
	assert.Len(t, repo.contacts["user-1"], 1)
}

func TestCreateContact_Validation(t *testing.T) {
	tests := []struct {
		name   string
		header string
		body   string
	}{
		{"missing user header", "", `{"name":"Ama","phone":"0244123456"}`},
		{"missing name", "user-1", `{"phone":"0244123456"}`},
		{"no phone or email", "user-1", `{"name":"Ama"}`},
		{"invalid body", "user-1", "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewContactHandler(newStubContactRepo())

			req := httptest.NewRequest("POST", "/api/contacts", strings.NewReader(tt.body))
			if tt.header != "" {
				req.Header.Set("X-User-ID", tt.header)
			}
			w := httptest.NewRecorder()
			handler.CreateContact(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListContacts(t *testing.T) {
	repo := newStubContactRepo()
	repo.contacts["user-1"] = []*entities.EmergencyContact{
		{ID: "c1", UserID: "user-1", Name: "Ama"},
		{ID: "c2", UserID: "user-1", Name: "Kofi"},
	}
	handler := handlers.NewContactHandler(repo)

	req := httptest.NewRequest("GET", "/api/contacts", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	handler.ListContacts(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Contacts []*entities.EmergencyContact `json:"contacts"`
		Total    int                          `json:"total"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Total)
}

func TestDeleteContact(t *testing.T) {
	repo := newStubContactRepo()
	repo.contacts["user-1"] = []*entities.EmergencyContact{{ID: "c1", UserID: "user-1", Name: "Ama"}}
	handler := handlers.NewContactHandler(repo)

	req := httptest.NewRequest("DELETE", "/api/contacts/c1", nil)
	req.Header.Set("X-User-ID", "user-1")
	req.SetPathValue("id", "c1")
	w := httptest.NewRecorder()
	handler.DeleteContact(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.contacts["user-1"])
}

func TestDeleteContact_NotFound(t *testing.T) {
	handler := handlers.NewContactHandler(newStubContactRepo())

	req := httptest.NewRequest("DELETE", "/api/contacts/missing", nil)
	req.Header.Set("X-User-ID", "user-1")
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.DeleteContact(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
