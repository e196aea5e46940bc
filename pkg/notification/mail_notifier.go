package notification

import (
	"context"

	"FreshTrack/entities"
)

// mailNotifier backs the Notifier contract with the reminder ticket table.
// Tickets sit there as "Pending" until the dispatcher delivers them by e-mail.
type mailNotifier struct {
	reminders ReminderRepository
}

func NewMailNotifier(reminders ReminderRepository) Notifier {
	return &mailNotifier{reminders: reminders}
}

func (n *mailNotifier) Schedule(ctx context.Context, ticket Ticket) error {
	return n.reminders.Upsert(ctx, &entities.ReminderTicket{
		Identifier: ticket.Identifier,
		ProductID:  ticket.ProductID,
		UserID:     ticket.UserID,
		Title:      ticket.Title,
		Body:       ticket.Body,
		TriggerAt:  ticket.TriggerAt,
		Status:     "Pending",
	})
}

func (n *mailNotifier) Cancel(ctx context.Context, identifier string) error {
	return n.reminders.DeleteByIdentifier(ctx, identifier)
}
