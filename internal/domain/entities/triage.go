package entities

import "time"

// TriageRole identifies the author of a triage message
type TriageRole string

const (
	TriageRoleUser      TriageRole = "user"
	TriageRoleAssistant TriageRole = "assistant"
)

// TriageStatus represents the lifecycle of a triage session
type TriageStatus string

const (
	TriageStatusActive   TriageStatus = "active"
	TriageStatusAssessed TriageStatus = "assessed"
)

// TriageSeverity is the model's judgement of how urgent the symptoms are
type TriageSeverity string

const (
	SeverityEmergency TriageSeverity = "emergency"
	SeverityUrgent    TriageSeverity = "urgent"
	SeverityRoutine   TriageSeverity = "routine"
	SeveritySelfCare  TriageSeverity = "self_care"
)

// TriageMessage is a single turn in a triage conversation
type TriageMessage struct {
	Role      TriageRole `json:"role"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

// TriageAssessment is the structured outcome of a triage session
type TriageAssessment struct {
	Severity       TriageSeverity `json:"severity"`
	Recommendation string         `json:"recommendation"`
	FacilityType   FacilityType   `json:"facility_type"`
	Symptoms       []string       `json:"symptoms,omitempty"`
}

// TriageSession is a linear symptom-triage conversation. All medical
// reasoning is delegated to the external model; the session only tracks the
// transcript and when an assessment has been produced.
type TriageSession struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	Status     TriageStatus      `json:"status"`
	Messages   []TriageMessage   `json:"messages"`
	UserTurns  int               `json:"user_turns"`
	Assessment *TriageAssessment `json:"assessment,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
