package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	"github.com/healthconnect/navigator-api/internal/domain/repositories"
	"github.com/healthconnect/navigator-api/internal/infrastructure/observability"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
	"github.com/healthconnect/navigator-api/pkg/retry"
)

// EmailSender delivers the email fallback channel for alerts
type EmailSender interface {
	Send(to, subject, body string) error
}

// carrierPrefixes maps Ghanaian mobile dialing prefixes to their network.
// Prefixes are the leading digits after normalizing to local 0XX format.
var carrierPrefixes = map[string]entities.Carrier{
	"024": entities.CarrierMTN,
	"025": entities.CarrierMTN,
	"053": entities.CarrierMTN,
	"054": entities.CarrierMTN,
	"055": entities.CarrierMTN,
	"059": entities.CarrierMTN,
	"020": entities.CarrierTelecel,
	"050": entities.CarrierTelecel,
	"026": entities.CarrierAirtelTigo,
	"027": entities.CarrierAirtelTigo,
	"056": entities.CarrierAirtelTigo,
	"057": entities.CarrierAirtelTigo,
}

// AlertService dispatches emergency alerts to a user's contacts. SMS is
// planned as an sms: intent URI for the caller's device to send; contacts on
// an unrecognized network fall back to server-side email.
type AlertService struct {
	contacts repositories.ContactRepository
	email    EmailSender
	metrics  *observability.Metrics
}

// NewAlertService creates a new alert service
func NewAlertService(contacts repositories.ContactRepository, email EmailSender, metrics *observability.Metrics) *AlertService {
	return &AlertService{
		contacts: contacts,
		email:    email,
		metrics:  metrics,
	}
}

// Dispatch sends an alert to the user's contacts (or a single contact when
// req.ContactID is set). Per-contact failures are isolated: one unreachable
// contact never blocks the rest.
func (s *AlertService) Dispatch(ctx context.Context, req entities.AlertRequest) (*entities.AlertResult, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.NewValidationError("alert message is required")
	}

	var contacts []*entities.EmergencyContact
	if req.ContactID != "" {
		contact, err := s.contacts.GetByID(ctx, req.UserID, req.ContactID)
		if err != nil {
			return nil, err
		}
		contacts = []*entities.EmergencyContact{contact}
	} else {
		list, err := s.contacts.ListByUser(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		contacts = list
	}

	if len(contacts) == 0 {
		return nil, apperrors.NewNotFoundError("no emergency contacts configured")
	}

	body := buildAlertBody(req)
	deliveries := make([]entities.AlertDelivery, 0, len(contacts))
	for _, contact := range contacts {
		deliveries = append(deliveries, s.dispatchToContact(ctx, contact, body))
	}

	return &entities.AlertResult{
		Deliveries: deliveries,
		Total:      len(deliveries),
	}, nil
}

func (s *AlertService) dispatchToContact(ctx context.Context, contact *entities.EmergencyContact, body string) entities.AlertDelivery {
	logger := observability.LoggerFromContext(ctx)
	delivery := entities.AlertDelivery{
		ContactID:    contact.ID,
		ContactName:  contact.Name,
		DispatchedAt: time.Now().UTC(),
	}

	carrier := DetectCarrier(contact.Phone)
	if carrier != entities.CarrierUnknown {
		delivery.Channel = entities.ChannelSMS
		delivery.Carrier = carrier
		delivery.SMSURI = BuildSMSURI(contact.Phone, body)
		delivery.Status = entities.AlertStatusPlanned
		s.record(ctx, entities.ChannelSMS, true)
		return delivery
	}

	if contact.Email == "" || s.email == nil {
		delivery.Channel = entities.ChannelSMS
		delivery.Carrier = entities.CarrierUnknown
		delivery.Status = entities.AlertStatusFailed
		delivery.Error = "unrecognized carrier and no email address on file"
		s.record(ctx, entities.ChannelSMS, false)
		return delivery
	}

	delivery.Channel = entities.ChannelEmail
	err := retry.DoWithLog(ctx, retry.DefaultConfig(), "alert-email", func() error {
		return s.email.Send(contact.Email, "Emergency alert from HealthConnect", body)
	}, func(attempt int, err error, next time.Duration) {
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Str("contact_id", contact.ID).
			Msg("alert email attempt failed, retrying")
	})
	if err != nil {
		delivery.Status = entities.AlertStatusFailed
		delivery.Error = err.Error()
		s.record(ctx, entities.ChannelEmail, false)
		return delivery
	}

	delivery.Status = entities.AlertStatusSent
	s.record(ctx, entities.ChannelEmail, true)
	return delivery
}

func (s *AlertService) record(ctx context.Context, channel entities.AlertChannel, success bool) {
	if s.metrics != nil {
		observability.RecordAlertDispatch(ctx, s.metrics, string(channel), success)
	}
}

// DetectCarrier identifies the Ghanaian mobile network for a phone number,
// accepting +233, 233, or local 0-prefixed formats.
func DetectCarrier(phone string) entities.Carrier {
	local := normalizeToLocal(phone)
	if len(local) < 3 {
		return entities.CarrierUnknown
	}
	if carrier, ok := carrierPrefixes[local[:3]]; ok {
		return carrier
	}
	return entities.CarrierUnknown
}

// BuildSMSURI builds an sms: intent URI with a prefilled body for the
// caller's device to send.
func BuildSMSURI(phone, body string) string {
	return fmt.Sprintf("sms:%s?body=%s", normalizeToE164(phone), url.QueryEscape(body))
}

func buildAlertBody(req entities.AlertRequest) string {
	body := req.Message
	if req.Location != nil {
		body += fmt.Sprintf("\nMy location: https://www.openstreetmap.org/?mlat=%.5f&mlon=%.5f",
			req.Location.Lat, req.Location.Lng)
	}
	return body
}

func normalizeToLocal(phone string) string {
	digits := stripNonDigits(phone)
	if strings.HasPrefix(digits, "233") {
		return "0" + strings.TrimPrefix(digits, "233")
	}
	return digits
}

func normalizeToE164(phone string) string {
	digits := stripNonDigits(phone)
	if strings.HasPrefix(digits, "233") {
		return "+" + digits
	}
	if strings.HasPrefix(digits, "0") {
		return "+233" + strings.TrimPrefix(digits, "0")
	}
	return "+" + digits
}

func stripNonDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
