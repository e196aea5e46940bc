package notification

import (
	"context"
	"time"

	"FreshTrack/entities"

	"github.com/google/uuid"
)

type (
	// Ticket is one reminder submission handed to a Notifier.
	Ticket struct {
		Identifier string
		ProductID  uuid.UUID
		UserID     uuid.UUID
		Title      string
		Body       string
		TriggerAt  time.Time
	}

	// Notifier delivers reminders. Schedule is an upsert by Identifier, so
	// submitting twice for the same identifier replaces the earlier ticket.
	// Cancel is idempotent and returns nil for unknown identifiers.
	Notifier interface {
		Schedule(ctx context.Context, ticket Ticket) error
		Cancel(ctx context.Context, identifier string) error
	}

	// RecordStore is the slice of the product persistence contract the
	// scheduler needs: a snapshot read and an atomic read-modify-write.
	RecordStore interface {
		FindByID(ctx context.Context, id string) (*entities.Product, error)
		Update(ctx context.Context, id string, mutate func(*entities.Product)) error
	}
)
