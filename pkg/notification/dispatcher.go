package notification

import (
	"context"
	"log"
	"time"

	"FreshTrack/entities"
	"FreshTrack/internal/utils/mailing"
)

const dispatchBatchSize = 50

type (
	// RecipientDirectory resolves the owner of a ticket to a mail address.
	RecipientDirectory interface {
		FindByID(ctx context.Context, id string) (*entities.User, error)
	}

	// Dispatcher drains due reminder tickets and delivers them by e-mail.
	// Construct with NewDispatcher and drive with Run; cancelling the
	// context is the teardown.
	Dispatcher struct {
		reminders ReminderRepository
		users     RecipientDirectory
		interval  time.Duration
		send      func(toEmail, subject, body string) error
	}
)

func NewDispatcher(reminders ReminderRepository, users RecipientDirectory, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		reminders: reminders,
		users:     users,
		interval:  interval,
		send:      mailing.SendMail,
	}
}

// Run polls for due tickets until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.dispatchDue(ctx)
		}
	}
}

func (d *Dispatcher) dispatchDue(ctx context.Context) {
	tickets, err := d.reminders.FindDue(ctx, time.Now(), dispatchBatchSize)
	if err != nil {
		log.Printf("Error fetching due reminders: %v", err)
		return
	}

	for _, ticket := range tickets {
		if err := d.deliver(ctx, ticket); err != nil {
			log.Printf("Error delivering reminder %s: %v", ticket.Identifier, err)
			if err := d.reminders.MarkStatus(ctx, ticket.Identifier, "Failed"); err != nil {
				log.Printf("Error marking reminder %s failed: %v", ticket.Identifier, err)
			}
			continue
		}
		if err := d.reminders.MarkStatus(ctx, ticket.Identifier, "Sent"); err != nil {
			log.Printf("Error marking reminder %s sent: %v", ticket.Identifier, err)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ticket *entities.ReminderTicket) error {
	user, err := d.users.FindByID(ctx, ticket.UserID.String())
	if err != nil {
		return err
	}
	return d.send(user.Email, ticket.Title, ticket.Body)
}
