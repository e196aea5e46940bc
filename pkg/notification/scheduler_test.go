package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"FreshTrack/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRecordStore struct {
	records       map[string]*entities.Product
	failUpdate    bool
	dropOnConfirm bool
	updates       int
}

func newFakeRecordStore(products ...*entities.Product) *fakeRecordStore {
	s := &fakeRecordStore{records: make(map[string]*entities.Product)}
	for _, p := range products {
		s.records[p.ID.String()] = p
	}
	return s
}

func (s *fakeRecordStore) FindByID(_ context.Context, id string) (*entities.Product, error) {
	p, ok := s.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *fakeRecordStore) Update(_ context.Context, id string, mutate func(*entities.Product)) error {
	if s.dropOnConfirm {
		// Simulates a delete racing the in-flight ticket confirmation.
		delete(s.records, id)
	}
	p, ok := s.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.updates++
	mutate(p)
	return nil
}

type fakeNotifier struct {
	active      map[string]Ticket
	cancels     []string
	scheduleErr error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{active: make(map[string]Ticket)}
}

func (n *fakeNotifier) Schedule(_ context.Context, ticket Ticket) error {
	if n.scheduleErr != nil {
		return n.scheduleErr
	}
	n.active[ticket.Identifier] = ticket
	return nil
}

func (n *fakeNotifier) Cancel(_ context.Context, identifier string) error {
	n.cancels = append(n.cancels, identifier)
	delete(n.active, identifier)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
}

func newTestScheduler(store *fakeRecordStore, notifier *fakeNotifier) *Scheduler {
	s := NewScheduler(store, notifier)
	s.now = fixedNow
	return s
}

func productWith(id uuid.UUID, ticketID *string) *entities.Product {
	return &entities.Product{
		ID:             id,
		UserID:         uuid.New(),
		Name:           "Milk",
		ExpirationDate: fixedNow().AddDate(0, 0, 10),
		NotificationID: ticketID,
	}
}

func TestSchedule_FutureDate(t *testing.T) {
	pid := uuid.New()
	store := newFakeRecordStore(productWith(pid, nil))
	notifier := newFakeNotifier()
	s := newTestScheduler(store, notifier)

	expiresAt := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	if err := s.Schedule(context.Background(), pid, "Milk", expiresAt); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	ticket, ok := notifier.active[pid.String()]
	if !ok {
		t.Fatal("no ticket submitted")
	}
	wantTrigger := time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)
	if !ticket.TriggerAt.Equal(wantTrigger) {
		t.Errorf("TriggerAt = %v, want %v", ticket.TriggerAt, wantTrigger)
	}

	got := store.records[pid.String()].NotificationID
	if got == nil || *got != pid.String() {
		t.Errorf("stored ticket id = %v, want %s", got, pid.String())
	}
}

func TestSchedule_PastDate(t *testing.T) {
	pid := uuid.New()
	old := "old-ticket"
	store := newFakeRecordStore(productWith(pid, &old))
	notifier := newFakeNotifier()
	s := newTestScheduler(store, notifier)

	yesterday := fixedNow().AddDate(0, 0, -1)
	if err := s.Schedule(context.Background(), pid, "Milk", yesterday); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	if len(notifier.active) != 0 {
		t.Errorf("active tickets = %d, want 0", len(notifier.active))
	}
	if len(notifier.cancels) != 1 || notifier.cancels[0] != old {
		t.Errorf("cancels = %v, want exactly one for %q", notifier.cancels, old)
	}
	if store.records[pid.String()].NotificationID != nil {
		t.Error("ticket id should be cleared for a past date")
	}
}

func TestSchedule_RescheduleReplaces(t *testing.T) {
	pid := uuid.New()
	store := newFakeRecordStore(productWith(pid, nil))
	notifier := newFakeNotifier()
	s := newTestScheduler(store, notifier)

	first := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	second := time.Date(2024, 7, 1, 0, 0, 0, 0, time.Local)

	if err := s.Schedule(context.Background(), pid, "Milk", first); err != nil {
		t.Fatalf("first Schedule failed: %v", err)
	}
	if err := s.Schedule(context.Background(), pid, "Milk", second); err != nil {
		t.Fatalf("second Schedule failed: %v", err)
	}

	if len(notifier.active) != 1 {
		t.Fatalf("active tickets = %d, want 1", len(notifier.active))
	}
	if len(notifier.cancels) != 1 || notifier.cancels[0] != pid.String() {
		t.Errorf("cancels = %v, want exactly one for the prior ticket", notifier.cancels)
	}
	wantTrigger := time.Date(2024, 7, 1, 10, 0, 0, 0, time.Local)
	if got := notifier.active[pid.String()].TriggerAt; !got.Equal(wantTrigger) {
		t.Errorf("TriggerAt = %v, want %v", got, wantTrigger)
	}
}

func TestSchedule_RecordDeletedConcurrently(t *testing.T) {
	pid := uuid.New()
	store := newFakeRecordStore(productWith(pid, nil))
	store.dropOnConfirm = true
	notifier := newFakeNotifier()
	s := newTestScheduler(store, notifier)

	expiresAt := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	if err := s.Schedule(context.Background(), pid, "Milk", expiresAt); err != nil {
		t.Fatalf("Schedule should swallow a concurrent delete, got %v", err)
	}
	if store.updates != 0 {
		t.Errorf("updates = %d, want 0 writes after the record vanished", store.updates)
	}
}

func TestSchedule_MissingRecord(t *testing.T) {
	store := newFakeRecordStore()
	notifier := newFakeNotifier()
	s := newTestScheduler(store, notifier)

	err := s.Schedule(context.Background(), uuid.New(), "Milk", fixedNow().AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("Schedule for a missing record should be a no-op, got %v", err)
	}
	if len(notifier.active) != 0 {
		t.Error("no ticket should be submitted for a missing record")
	}
}

func TestSchedule_SubmissionFailure(t *testing.T) {
	pid := uuid.New()
	old := "old-ticket"
	store := newFakeRecordStore(productWith(pid, &old))
	notifier := newFakeNotifier()
	notifier.scheduleErr = errors.New("smtp backlog full")
	s := newTestScheduler(store, notifier)

	err := s.Schedule(context.Background(), pid, "Milk", fixedNow().AddDate(0, 0, 5))
	if err == nil {
		t.Fatal("expected submission failure to surface")
	}
	// The stored ticket id must stay untouched on failure.
	got := store.records[pid.String()].NotificationID
	if got == nil || *got != old {
		t.Errorf("stored ticket id = %v, want unchanged %q", got, old)
	}
}

func TestCancelFor(t *testing.T) {
	notifier := newFakeNotifier()
	s := newTestScheduler(newFakeRecordStore(), notifier)

	if err := s.CancelFor(context.Background(), ""); err != nil {
		t.Fatalf("CancelFor empty id should be a no-op, got %v", err)
	}
	if len(notifier.cancels) != 0 {
		t.Error("no cancel expected for an empty id")
	}

	if err := s.CancelFor(context.Background(), "ticket-1"); err != nil {
		t.Fatalf("CancelFor failed: %v", err)
	}
	if len(notifier.cancels) != 1 || notifier.cancels[0] != "ticket-1" {
		t.Errorf("cancels = %v, want [ticket-1]", notifier.cancels)
	}
}
