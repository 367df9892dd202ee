package providers

import (
	"context"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
)

// TriageProvider defines the interface for the generative model behind
// symptom triage. All medical reasoning lives on the other side of this
// boundary.
type TriageProvider interface {
	// Reply returns the assistant's next conversational turn
	Reply(ctx context.Context, history []entities.TriageMessage) (string, error)

	// Assess produces a structured assessment of the full conversation
	Assess(ctx context.Context, history []entities.TriageMessage) (*entities.TriageAssessment, error)
}
