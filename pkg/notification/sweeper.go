package notification

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"FoodWise-Backend/domain"
	"FoodWise-Backend/entities"
	"FoodWise-Backend/internal/utils/mailing"
	"FoodWise-Backend/pkg/expiry"
	"FoodWise-Backend/pkg/item"
	"FoodWise-Backend/pkg/user"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

// expirySweepSchedule runs the sweep every morning at 07:00 server time.
const expirySweepSchedule = "0 7 * * *"

var sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "foodwise_expiry_sweeps_total",
	Help: "Completed daily expiry sweep runs.",
})

type Sweeper struct {
	userRepository         user.UserRepository
	itemRepository         item.ItemRepository
	notificationRepository NotificationRepository
	sendMail               func(toEmail, subject, body string) error
	clock                  func() time.Time
}

func NewSweeper(
	userRepository user.UserRepository,
	itemRepository item.ItemRepository,
	notificationRepository NotificationRepository,
) *Sweeper {
	return &Sweeper{
		userRepository:         userRepository,
		itemRepository:         itemRepository,
		notificationRepository: notificationRepository,
		sendMail:               mailing.SendMail,
		clock:                  time.Now,
	}
}

// Start schedules the daily sweep and returns the running scheduler so the
// caller can stop it on shutdown.
func (s *Sweeper) Start() *cron.Cron {
	scheduler := cron.New()
	scheduler.AddFunc(expirySweepSchedule, func() {
		if err := s.Sweep(context.Background()); err != nil {
			log.Printf("expiry sweep failed: %v", err)
		}
	})
	scheduler.Start()
	return scheduler
}

// Sweep walks every user's active inventory, records a notification for each
// item that has expired or is within the reminder window, and mails a digest
// when anything new came up. An item gets at most one notification per type.
func (s *Sweeper) Sweep(ctx context.Context) error {
	users, err := s.userRepository.GetAllUsers(ctx)
	if err != nil {
		return err
	}

	now := s.clock()

	for _, u := range users {
		items, err := s.itemRepository.GetActiveItemsByOwner(ctx, u.ID.String())
		if err != nil {
			log.Printf("expiry sweep: listing items for %s: %v", u.ID, err)
			continue
		}

		created, err := s.sweepUser(ctx, u, items, now)
		if err != nil {
			log.Printf("expiry sweep: user %s: %v", u.ID, err)
			continue
		}

		if len(created) > 0 {
			if err := s.sendMail(u.Email, "FoodWise: items need your attention", digestBody(u.Name, created)); err != nil {
				log.Printf("expiry sweep: mailing %s: %v", u.Email, err)
			}
		}
	}

	sweepsTotal.Inc()
	return nil
}

func (s *Sweeper) sweepUser(ctx context.Context, u *entities.User, items []*entities.Item, now time.Time) ([]*entities.Notification, error) {
	var created []*entities.Notification

	for _, it := range items {
		c := expiry.Classify(it.ExpiryDate, now, expiry.DefaultReportThreshold)

		var notificationType, message string
		switch c.Status {
		case expiry.StatusExpired:
			notificationType = domain.NotificationTypeExpired
			message = fmt.Sprintf("%s has expired. Consider removing it from your inventory.", it.Name)
		case expiry.StatusExpiringSoon:
			notificationType = domain.NotificationTypeExpiring
			if c.DaysRemaining == 0 {
				message = fmt.Sprintf("%s expires today.", it.Name)
			} else {
				message = fmt.Sprintf("%s expires in %d day(s).", it.Name, c.DaysRemaining)
			}
		default:
			continue
		}

		exists, err := s.notificationRepository.ExistsForItem(ctx, it.ID.String(), notificationType)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		notification := &entities.Notification{
			UserID:    u.ID,
			ItemID:    it.ID,
			Message:   message,
			Type:      notificationType,
			CreatedAt: now,
		}
		if err := s.notificationRepository.CreateNotification(ctx, notification); err != nil {
			return created, err
		}
		created = append(created, notification)
	}

	return created, nil
}

func digestBody(name string, notifications []*entities.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>", name)
	b.WriteString("<p>Some items in your inventory need attention:</p><ul>")
	for _, n := range notifications {
		fmt.Fprintf(&b, "<li>%s</li>", n.Message)
	}
	b.WriteString("</ul><p>Open FoodWise to review your inventory.</p>")
	return b.String()
}
