package repositories

import (
	"context"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
)

// ContactRepository defines the interface for emergency contact storage
type ContactRepository interface {
	// Create stores a new contact for a user
	Create(ctx context.Context, contact *entities.EmergencyContact) error

	// GetByID retrieves one of a user's contacts
	GetByID(ctx context.Context, userID, contactID string) (*entities.EmergencyContact, error)

	// ListByUser retrieves all contacts for a user, ordered by priority
	ListByUser(ctx context.Context, userID string) ([]*entities.EmergencyContact, error)

	// Delete removes a contact
	Delete(ctx context.Context, userID, contactID string) error
}
