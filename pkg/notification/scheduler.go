package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"FreshTrack/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// reminderHour is the local time of day a reminder fires on the expiration day.
const reminderHour = 10

// Scheduler keeps at most one live reminder ticket per product. Re-scheduling
// reuses the identifier derived from the product id, and the final ticket id
// write re-checks that the record still exists, so a concurrent delete simply
// discards the confirmation.
type Scheduler struct {
	records  RecordStore
	notifier Notifier
	now      func() time.Time
}

func NewScheduler(records RecordStore, notifier Notifier) *Scheduler {
	return &Scheduler{
		records:  records,
		notifier: notifier,
		now:      time.Now,
	}
}

// Schedule ensures the reminder state for one product matches its expiration
// date. It runs as one linear sequence: cancel the previous ticket, bail out
// on past dates (clearing the stored ticket id, not an error), submit the new
// ticket, then write the ticket id back only if the record still exists.
func (s *Scheduler) Schedule(ctx context.Context, productID uuid.UUID, name string, expiresAt time.Time) error {
	id := productID.String()

	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if record.NotificationID != nil {
		if err := s.notifier.Cancel(ctx, *record.NotificationID); err != nil {
			log.Printf("Error cancelling previous reminder %s: %v", *record.NotificationID, err)
		}
	}

	triggerAt, ok := s.triggerFor(expiresAt)
	if !ok {
		// Already expired or the trigger time has passed. Not an error.
		err := s.records.Update(ctx, id, func(p *entities.Product) {
			p.NotificationID = nil
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	identifier := id
	ticket := Ticket{
		Identifier: identifier,
		ProductID:  productID,
		UserID:     record.UserID,
		Title:      "Expiration alert!",
		Body:       fmt.Sprintf("The product %q is about to spoil.", name),
		TriggerAt:  triggerAt,
	}

	if err := s.notifier.Schedule(ctx, ticket); err != nil {
		// The stored ticket id stays as it was; the save that triggered
		// this call is never rolled back.
		return fmt.Errorf("submitting reminder for %q: %w", name, err)
	}

	err = s.records.Update(ctx, id, func(p *entities.Product) {
		p.NotificationID = &identifier
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Record deleted while the ticket was in flight. Drop silently.
		return nil
	}
	return err
}

// CancelFor requests removal of a pending ticket. Unknown or already-fired
// identifiers are a no-op.
func (s *Scheduler) CancelFor(ctx context.Context, ticketID string) error {
	if ticketID == "" {
		return nil
	}
	return s.notifier.Cancel(ctx, ticketID)
}

func (s *Scheduler) triggerFor(expiresAt time.Time) (time.Time, bool) {
	now := s.now()
	if !expiresAt.After(now) {
		return time.Time{}, false
	}

	year, month, day := expiresAt.Date()
	triggerAt := time.Date(year, month, day, reminderHour, 0, 0, 0, time.Local)
	if !triggerAt.After(now) {
		return time.Time{}, false
	}
	return triggerAt, true
}
