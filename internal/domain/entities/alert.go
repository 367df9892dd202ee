package entities

import "time"

// AlertChannel represents the delivery channel for an emergency alert
type AlertChannel string

const (
	ChannelSMS   AlertChannel = "sms"
	ChannelEmail AlertChannel = "email"
)

// AlertStatus represents the delivery outcome for one contact
type AlertStatus string

const (
	AlertStatusPlanned AlertStatus = "planned"
	AlertStatusSent    AlertStatus = "sent"
	AlertStatusFailed  AlertStatus = "failed"
)

// Carrier is a Ghanaian mobile network operator
type Carrier string

const (
	CarrierMTN        Carrier = "mtn"
	CarrierTelecel    Carrier = "telecel"
	CarrierAirtelTigo Carrier = "airteltigo"
	CarrierUnknown    Carrier = "unknown"
)

// AlertRequest is an emergency alert raised by a user
type AlertRequest struct {
	UserID    string  `json:"user_id"`
	Message   string  `json:"message"`
	Location  *LatLng `json:"location,omitempty"`
	ContactID string  `json:"contact_id,omitempty"`
}

// AlertDelivery records the dispatch outcome for a single contact.
// SMS delivery is client-side: the API plans an sms: intent URI and the
// caller's device sends it. Email is delivered server-side.
type AlertDelivery struct {
	ContactID    string       `json:"contact_id"`
	ContactName  string       `json:"contact_name"`
	Channel      AlertChannel `json:"channel"`
	Carrier      Carrier      `json:"carrier,omitempty"`
	Status       AlertStatus  `json:"status"`
	SMSURI       string       `json:"sms_uri,omitempty"`
	Error        string       `json:"error,omitempty"`
	DispatchedAt time.Time    `json:"dispatched_at"`
}

// AlertResult is the response for an alert dispatch
type AlertResult struct {
	Deliveries []AlertDelivery `json:"deliveries"`
	Total      int             `json:"total"`
}
