package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"FoodWise-Backend/domain"
	"FoodWise-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var sweepNow = time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

type fakeUserRepo struct {
	users []*entities.User
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *entities.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, _ *entities.User) error { return nil }

func (r *fakeUserRepo) GetAllUsers(_ context.Context) ([]*entities.User, error) {
	return r.users, nil
}

type fakeItemRepo struct {
	items []*entities.Item
}

func (r *fakeItemRepo) AddItem(_ context.Context, it *entities.Item) error {
	r.items = append(r.items, it)
	return nil
}

func (r *fakeItemRepo) GetItemByID(_ context.Context, id string) (*entities.Item, error) {
	for _, it := range r.items {
		if it.ID.String() == id {
			return it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeItemRepo) UpdateItem(_ context.Context, _ *entities.Item) error { return nil }

func (r *fakeItemRepo) DeleteItem(_ context.Context, _ string) error { return nil }

func (r *fakeItemRepo) GetItemsByOwner(_ context.Context, userID string) ([]*entities.Item, error) {
	var owned []*entities.Item
	for _, it := range r.items {
		if it.UserID.String() == userID {
			owned = append(owned, it)
		}
	}
	return owned, nil
}

func (r *fakeItemRepo) GetActiveItemsByOwner(ctx context.Context, userID string) ([]*entities.Item, error) {
	owned, _ := r.GetItemsByOwner(ctx, userID)
	var active []*entities.Item
	for _, it := range owned {
		if !it.IsConsumed && !it.IsWasted {
			active = append(active, it)
		}
	}
	return active, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func newTestSweeper(users *fakeUserRepo, items *fakeItemRepo, notifications *fakeNotificationRepo, sent *[]sentMail) *Sweeper {
	return &Sweeper{
		userRepository:         users,
		itemRepository:         items,
		notificationRepository: notifications,
		sendMail: func(to, subject, body string) error {
			*sent = append(*sent, sentMail{to: to, subject: subject, body: body})
			return nil
		},
		clock: func() time.Time { return sweepNow },
	}
}

func sweepItem(userID uuid.UUID, name string, expiresIn int) *entities.Item {
	return &entities.Item{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Category:   "Dairy",
		Quantity:   1,
		Unit:       "item",
		ExpiryDate: sweepNow.AddDate(0, 0, expiresIn),
	}
}

func TestSweepCreatesNotificationsAndDigest(t *testing.T) {
	owner := uuid.New()
	users := &fakeUserRepo{users: []*entities.User{
		{ID: owner, Name: "Asha", Email: "asha@example.com"},
	}}
	items := &fakeItemRepo{items: []*entities.Item{
		sweepItem(owner, "Milk", -1),
		sweepItem(owner, "Yogurt", 2),
		sweepItem(owner, "Cheese", 30),
	}}
	notifications := &fakeNotificationRepo{}
	var sent []sentMail

	sweeper := newTestSweeper(users, items, notifications, &sent)
	if err := sweeper.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if len(notifications.notifications) != 2 {
		t.Fatalf("created %d notifications, want 2", len(notifications.notifications))
	}

	types := map[string]string{}
	for _, n := range notifications.notifications {
		types[n.Type] = n.Message
	}
	if !strings.Contains(types[domain.NotificationTypeExpired], "Milk") {
		t.Errorf("expired message = %q, want mention of Milk", types[domain.NotificationTypeExpired])
	}
	if !strings.Contains(types[domain.NotificationTypeExpiring], "Yogurt") {
		t.Errorf("expiring message = %q, want mention of Yogurt", types[domain.NotificationTypeExpiring])
	}

	if len(sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(sent))
	}
	if sent[0].to != "asha@example.com" {
		t.Errorf("mail to = %q", sent[0].to)
	}
	if !strings.Contains(sent[0].body, "Milk") || !strings.Contains(sent[0].body, "Yogurt") {
		t.Errorf("digest body missing items:\n%s", sent[0].body)
	}
}

func TestSweepIsIdempotentPerItemAndType(t *testing.T) {
	owner := uuid.New()
	users := &fakeUserRepo{users: []*entities.User{
		{ID: owner, Name: "Asha", Email: "asha@example.com"},
	}}
	items := &fakeItemRepo{items: []*entities.Item{
		sweepItem(owner, "Yogurt", 2),
	}}
	notifications := &fakeNotificationRepo{}
	var sent []sentMail

	sweeper := newTestSweeper(users, items, notifications, &sent)
	if err := sweeper.Sweep(context.Background()); err != nil {
		t.Fatalf("first Sweep: %v", err)
	}
	if err := sweeper.Sweep(context.Background()); err != nil {
		t.Fatalf("second Sweep: %v", err)
	}

	if len(notifications.notifications) != 1 {
		t.Errorf("created %d notifications, want 1 after repeated sweeps", len(notifications.notifications))
	}
	if len(sent) != 1 {
		t.Errorf("sent %d mails, want 1", len(sent))
	}
}

func TestSweepSkipsConsumedAndHealthyItems(t *testing.T) {
	owner := uuid.New()
	users := &fakeUserRepo{users: []*entities.User{
		{ID: owner, Name: "Asha", Email: "asha@example.com"},
	}}
	consumed := sweepItem(owner, "Milk", -1)
	consumed.IsConsumed = true
	items := &fakeItemRepo{items: []*entities.Item{
		consumed,
		sweepItem(owner, "Cheese", 30),
	}}
	notifications := &fakeNotificationRepo{}
	var sent []sentMail

	sweeper := newTestSweeper(users, items, notifications, &sent)
	if err := sweeper.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	if len(notifications.notifications) != 0 {
		t.Errorf("created %d notifications, want 0", len(notifications.notifications))
	}
	if len(sent) != 0 {
		t.Errorf("sent %d mails, want 0", len(sent))
	}
}

func TestSweepNotifiesAgainWhenExpiringItemExpires(t *testing.T) {
	owner := uuid.New()
	users := &fakeUserRepo{users: []*entities.User{
		{ID: owner, Name: "Asha", Email: "asha@example.com"},
	}}
	yogurt := sweepItem(owner, "Yogurt", 2)
	items := &fakeItemRepo{items: []*entities.Item{yogurt}}
	notifications := &fakeNotificationRepo{}
	var sent []sentMail

	sweeper := newTestSweeper(users, items, notifications, &sent)
	if err := sweeper.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	yogurt.ExpiryDate = sweepNow.AddDate(0, 0, -1)
	if err := sweeper.Sweep(context.Background()); err != nil {
		t.Fatalf("second Sweep: %v", err)
	}

	if len(notifications.notifications) != 2 {
		t.Fatalf("created %d notifications, want expiring then expired", len(notifications.notifications))
	}
	if notifications.notifications[1].Type != domain.NotificationTypeExpired {
		t.Errorf("second type = %q, want %q", notifications.notifications[1].Type, domain.NotificationTypeExpired)
	}
}
