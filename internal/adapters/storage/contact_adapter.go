package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/healthconnect/navigator-api/internal/domain/entities"
	"github.com/healthconnect/navigator-api/internal/domain/repositories"
	redisclient "github.com/healthconnect/navigator-api/internal/infrastructure/clients/redis"
	apperrors "github.com/healthconnect/navigator-api/pkg/errors"
)

// ContactAdapter implements ContactRepository on a Redis hash per user.
// Contacts are small (a handful per user) so a full-hash read per list is
// fine; there is no relational store in this deployment.
type ContactAdapter struct {
	client *redisclient.Client
}

// NewContactAdapter creates a new Redis-backed contact repository
func NewContactAdapter(client *redisclient.Client) repositories.ContactRepository {
	return &ContactAdapter{client: client}
}

func contactsKey(userID string) string {
	return "hc:contacts:" + userID
}

// Create stores a new contact for a user
func (a *ContactAdapter) Create(ctx context.Context, contact *entities.EmergencyContact) error {
	if contact.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now

	payload, err := json.Marshal(contact)
	if err != nil {
		return apperrors.NewInternalError("failed to encode contact", err)
	}

	if err := a.client.Client().HSet(ctx, contactsKey(contact.UserID), contact.ID, payload).Err(); err != nil {
		return apperrors.NewInternalError("failed to store contact", err)
	}
	return nil
}

// GetByID retrieves one of a user's contacts
func (a *ContactAdapter) GetByID(ctx context.Context, userID, contactID string) (*entities.EmergencyContact, error) {
	payload, err := a.client.Client().HGet(ctx, contactsKey(userID), contactID).Bytes()
	if err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("contact %s not found", contactID))
	}

	var contact entities.EmergencyContact
	if err := json.Unmarshal(payload, &contact); err != nil {
		return nil, apperrors.NewInternalError("failed to decode contact", err)
	}
	return &contact, nil
}

// ListByUser retrieves all contacts for a user, ordered by priority
func (a *ContactAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.EmergencyContact, error) {
	values, err := a.client.Client().HGetAll(ctx, contactsKey(userID)).Result()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list contacts", err)
	}

	contacts := make([]*entities.EmergencyContact, 0, len(values))
	for _, payload := range values {
		var contact entities.EmergencyContact
		if err := json.Unmarshal([]byte(payload), &contact); err != nil {
			continue
		}
		contacts = append(contacts, &contact)
	}

	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].Priority != contacts[j].Priority {
			return contacts[i].Priority < contacts[j].Priority
		}
		return contacts[i].CreatedAt.Before(contacts[j].CreatedAt)
	})

	return contacts, nil
}

// Delete removes a contact
func (a *ContactAdapter) Delete(ctx context.Context, userID, contactID string) error {
	removed, err := a.client.Client().HDel(ctx, contactsKey(userID), contactID).Result()
	if err != nil {
		return apperrors.NewInternalError("failed to delete contact", err)
	}
	if removed == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("contact %s not found", contactID))
	}
	return nil
}
