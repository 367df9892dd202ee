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

type stubDispatcher struct {
	result  *entities.AlertResult
	err     error
	lastReq entities.AlertRequest
}

func (s *stubDispatcher) Dispatch(_ context.Context, req entities.AlertRequest) (*entities.AlertResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestDispatchAlert_Success(t *testing.T) {
	stub := &stubDispatcher{result: &entities.AlertResult{
		Deliveries: []entities.AlertDelivery{{
			ContactID: "c1",
			Channel:   entities.ChannelSMS,
			Carrier:   entities.CarrierMTN,
			Status:    entities.AlertStatusPlanned,
			SMSURI:    "sms:+233244123456?body=help",
		}},
		Total: 1,
	}}
	handler := handlers.NewAlertHandler(stub)

	body := `{"message":"I need help","location":{"lat":5.6037,"lng":-0.187}}`
	req := httptest.NewRequest("POST", "/api/alerts", strings.NewReader(body))
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	handler.DispatchAlert(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", stub.lastReq.UserID)
	assert.Equal(t, "I need help", stub.lastReq.Message)
	require.NotNil(t, stub.lastReq.Location)
	assert.InDelta(t, 5.6037, stub.lastReq.Location.Lat, 1e-9)

	var response entities.AlertResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, entities.AlertStatusPlanned, response.Deliveries[0].Status)
}

func TestDispatchAlert_RequiresUserHeader(t *testing.T) {
	handler := handlers.NewAlertHandler(&stubDispatcher{})

	req := httptest.NewRequest("POST", "/api/alerts", strings.NewReader(`{"message":"help"}`))
	w := httptest.NewRecorder()
	handler.DispatchAlert(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchAlert_NoContacts(t *testing.T) {
	stub := &stubDispatcher{err: apperrors.NewNotFoundError("no emergency contacts configured")}
	handler := handlers.NewAlertHandler(stub)

	req := httptest.NewRequest("POST", "/api/alerts", strings.NewReader(`{"message":"help"}`))
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	handler.DispatchAlert(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
