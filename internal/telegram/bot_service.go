// Package telegram sends admin notifications through the Telegram Bot API and
// answers a few read-only commands from the admin chat.
package telegram

import (
	"context"
	"fmt"
	"strings"

	"aura/backend/internal/localization"
	"aura/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const outboxSize = 64

// maxListed caps the rows returned by the list commands.
const maxListed = 10

// Notifier receives admin-relevant domain events.
type Notifier interface {
	ComplaintFiled(c models.Complaint)
	ReservationRequested(r models.Reservation)
}

// Sender is the part of tgbotapi.BotAPI used for outgoing messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ComplaintLister lists complaints, optionally filtered by status.
type ComplaintLister interface {
	List(ctx context.Context, status models.ComplaintStatus) ([]models.Complaint, error)
}

// ReservationLister lists reservations, optionally filtered by status.
type ReservationLister interface {
	List(ctx context.Context, status models.ReservationStatus) ([]models.Reservation, error)
}

// BotService delivers notifications to one admin chat and serves its commands.
type BotService struct {
	BotAPI       *tgbotapi.BotAPI
	sender       Sender
	chatID       int64
	localizer    *localization.Localizer
	complaints   ComplaintLister
	reservations ReservationLister
	outbox       chan tgbotapi.Chattable
	log          *zap.SugaredLogger
}

// NewBotService authorizes the bot and targets adminChatID.
func NewBotService(token string, adminChatID int64, complaints ComplaintLister, reservations ReservationLister, loc *localization.Localizer, log *zap.SugaredLogger) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorize: %w", err)
	}
	bot.Debug = false
	log.Infow("Telegram bot authorized", "account", bot.Self.UserName)

	s := newBotService(bot, adminChatID, complaints, reservations, loc, log)
	s.BotAPI = bot
	return s, nil
}

func newBotService(sender Sender, adminChatID int64, complaints ComplaintLister, reservations ReservationLister, loc *localization.Localizer, log *zap.SugaredLogger) *BotService {
	if loc == nil {
		loc = localization.Default()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &BotService{
		sender:       sender,
		chatID:       adminChatID,
		localizer:    loc,
		complaints:   complaints,
		reservations: reservations,
		outbox:       make(chan tgbotapi.Chattable, outboxSize),
		log:          log,
	}
}

// ComplaintFiled queues an admin alert for a new complaint.
func (s *BotService) ComplaintFiled(c models.Complaint) {
	s.enqueue(s.localizer.Format(localization.DefaultLang, "notify.complaint_filed",
		c.Analysis.Priority, c.Number, c.Analysis.Category, c.UserEmail, c.Subject))
}

// ReservationRequested queues an admin alert for a new reservation.
func (s *BotService) ReservationRequested(r models.Reservation) {
	s.enqueue(s.localizer.Format(localization.DefaultLang, "notify.reservation_requested",
		r.PropertyName, r.RequesterName, r.RequesterPhone, r.Price))
}

func (s *BotService) enqueue(text string) {
	select {
	case s.outbox <- tgbotapi.NewMessage(s.chatID, text):
	default:
		s.log.Warnw("Telegram outbox full, dropping notification", "chat_id", s.chatID)
	}
}

// Run drains the outbox and, when the bot is authorized, serves admin
// commands until ctx is done.
func (s *BotService) Run(ctx context.Context) {
	go s.writePump(ctx)

	if s.BotAPI == nil {
		return
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)
	defer s.BotAPI.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil && update.Message.IsCommand() {
				s.handleCommand(ctx, update.Message)
			}
		}
	}
}

func (s *BotService) writePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.outbox:
			if _, err := s.sender.Send(msg); err != nil {
				s.log.Errorw("Failed to send Telegram message", "chat_id", s.chatID, "error", err)
			}
		}
	}
}

func (s *BotService) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat.ID != s.chatID {
		s.log.Warnw("Ignoring Telegram command from non-admin chat", "command", msg.Command())
		return
	}

	var reply string
	switch msg.Command() {
	case "open":
		reply = s.openComplaints(ctx)
	case "pending":
		reply = s.pendingReservations(ctx)
	case "stats":
		reply = s.stats(ctx)
	default:
		reply = "Commands:\n/open - complaints under review\n/pending - pending reservations\n/stats - totals by status"
	}
	s.enqueue(reply)
}

func (s *BotService) openComplaints(ctx context.Context) string {
	if s.complaints == nil {
		return "Complaints are not available."
	}
	list, err := s.complaints.List(ctx, models.ComplaintUnderReview)
	if err != nil {
		s.log.Errorw("Telegram /open failed", "error", err)
		return "Could not load complaints."
	}
	if len(list) == 0 {
		return "No complaints under review."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d complaint(s) under review:\n", len(list))
	for i, c := range list {
		if i == maxListed {
			fmt.Fprintf(&b, "... and %d more", len(list)-maxListed)
			break
		}
		fmt.Fprintf(&b, "%s [%s] %s: %s (%s)\n", c.Number, c.Analysis.Priority, c.Analysis.Category, c.Subject, c.UserEmail)
	}
	return strings.TrimSpace(b.String())
}

func (s *BotService) pendingReservations(ctx context.Context) string {
	if s.reservations == nil {
		return "Reservations are not available."
	}
	list, err := s.reservations.List(ctx, models.ReservationPending)
	if err != nil {
		s.log.Errorw("Telegram /pending failed", "error", err)
		return "Could not load reservations."
	}
	if len(list) == 0 {
		return "No pending reservations."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d pending reservation(s):\n", len(list))
	for i, r := range list {
		if i == maxListed {
			fmt.Fprintf(&b, "... and %d more", len(list)-maxListed)
			break
		}
		fmt.Fprintf(&b, "%s: %s %s\n", r.PropertyName, r.RequesterName, r.RequesterPhone)
	}
	return strings.TrimSpace(b.String())
}

func (s *BotService) stats(ctx context.Context) string {
	var b strings.Builder
	if s.complaints != nil {
		if list, err := s.complaints.List(ctx, ""); err == nil {
			counts := make(map[models.ComplaintStatus]int)
			for _, c := range list {
				counts[c.Status]++
			}
			fmt.Fprintf(&b, "Complaints: %d total, %d under review, %d resolved, %d rejected\n",
				len(list), counts[models.ComplaintUnderReview], counts[models.ComplaintResolved], counts[models.ComplaintRejected])
		}
	}
	if s.reservations != nil {
		if list, err := s.reservations.List(ctx, ""); err == nil {
			counts := make(map[models.ReservationStatus]int)
			for _, r := range list {
				counts[r.Status]++
			}
			fmt.Fprintf(&b, "Reservations: %d total, %d pending, %d approved, %d rejected",
				len(list), counts[models.ReservationPending], counts[models.ReservationApproved], counts[models.ReservationRejected])
		}
	}
	if b.Len() == 0 {
		return "No statistics available."
	}
	return strings.TrimSpace(b.String())
}

// NopNotifier discards notifications. Used when no bot token is configured.
type NopNotifier struct{}

func (NopNotifier) ComplaintFiled(models.Complaint)         {}
func (NopNotifier) ReservationRequested(models.Reservation) {}
