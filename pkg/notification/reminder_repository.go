package notification

import (
	"context"
	"time"

	"FreshTrack/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ReminderRepository interface {
		Upsert(ctx context.Context, ticket *entities.ReminderTicket) error
		DeleteByIdentifier(ctx context.Context, identifier string) error
		FindDue(ctx context.Context, now time.Time, limit int) ([]*entities.ReminderTicket, error)
		MarkStatus(ctx context.Context, identifier string, status string) error
	}

	reminderRepository struct {
		db *gorm.DB
	}
)

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Upsert(ctx context.Context, ticket *entities.ReminderTicket) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identifier"}},
		UpdateAll: true,
	}).Create(ticket).Error
}

func (r *reminderRepository) DeleteByIdentifier(ctx context.Context, identifier string) error {
	// Deleting zero rows is not an error, which makes cancellation idempotent.
	return r.db.WithContext(ctx).
		Where("identifier = ?", identifier).
		Delete(&entities.ReminderTicket{}).Error
}

func (r *reminderRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]*entities.ReminderTicket, error) {
	var tickets []*entities.ReminderTicket
	if err := r.db.WithContext(ctx).
		Where("status = ? AND trigger_at <= ?", "Pending", now).
		Order("trigger_at asc").
		Limit(limit).
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *reminderRepository) MarkStatus(ctx context.Context, identifier string, status string) error {
	return r.db.WithContext(ctx).Model(&entities.ReminderTicket{}).
		Where("identifier = ?", identifier).
		Updates(map[string]interface{}{"status": status}).Error
}
