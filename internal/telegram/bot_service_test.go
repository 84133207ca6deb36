package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"aura/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const adminChat int64 = 4242

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

type MockComplaints struct {
	mock.Mock
}

func (m *MockComplaints) List(ctx context.Context, status models.ComplaintStatus) ([]models.Complaint, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.Complaint), args.Error(1)
}

type MockReservations struct {
	mock.Mock
}

func (m *MockReservations) List(ctx context.Context, status models.ReservationStatus) ([]models.Reservation, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func queuedText(t *testing.T, s *BotService) string {
	t.Helper()
	select {
	case msg := <-s.outbox:
		cfg, ok := msg.(tgbotapi.MessageConfig)
		require.True(t, ok)
		return cfg.Text
	default:
		t.Fatal("nothing queued")
		return ""
	}
}

func command(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
		Chat:     tgbotapi.Chat{ID: chatID},
	}
}

func TestComplaintFiled_FormatsAlert(t *testing.T) {
	s := newBotService(new(MockSender), adminChat, nil, nil, nil, nil)

	s.ComplaintFiled(models.Complaint{
		Number:    "CMP-1700000000000",
		UserEmail: "asha@example.com",
		Subject:   "Ceiling leak",
		Analysis:  models.TriageResult{Category: models.CategoryPlumbing, Priority: models.PriorityHigh},
	})

	text := queuedText(t, s)
	assert.Contains(t, text, "High")
	assert.Contains(t, text, "CMP-1700000000000")
	assert.Contains(t, text, "Plumbing")
	assert.Contains(t, text, "asha@example.com")
}

func TestReservationRequested_FormatsAlert(t *testing.T) {
	s := newBotService(new(MockSender), adminChat, nil, nil, nil, nil)

	s.ReservationRequested(models.Reservation{PropertyName: "Cozy Flat in Mumbai", RequesterName: "ravi", RequesterPhone: "9876543210", Price: 50000})

	text := queuedText(t, s)
	assert.Contains(t, text, "Cozy Flat in Mumbai")
	assert.Contains(t, text, "9876543210")
	assert.Contains(t, text, "50000")
}

func TestEnqueue_DropsWhenFull(t *testing.T) {
	s := newBotService(new(MockSender), adminChat, nil, nil, nil, nil)

	for i := 0; i < outboxSize+5; i++ {
		s.ReservationRequested(models.Reservation{})
	}

	assert.Len(t, s.outbox, outboxSize)
}

func TestHandleCommand_Open(t *testing.T) {
	complaints := new(MockComplaints)
	complaints.On("List", mock.Anything, models.ComplaintUnderReview).Return([]models.Complaint{
		{Number: "CMP-1", Subject: "Leak", UserEmail: "a@example.com", Analysis: models.TriageResult{Category: models.CategoryPlumbing, Priority: models.PriorityHigh}},
	}, nil)
	s := newBotService(new(MockSender), adminChat, complaints, nil, nil, nil)

	s.handleCommand(context.Background(), command(adminChat, "/open"))

	text := queuedText(t, s)
	assert.Contains(t, text, "1 complaint(s) under review")
	assert.Contains(t, text, "CMP-1 [High] Plumbing: Leak (a@example.com)")
	complaints.AssertExpectations(t)
}

func TestHandleCommand_IgnoresOtherChats(t *testing.T) {
	complaints := new(MockComplaints)
	s := newBotService(new(MockSender), adminChat, complaints, nil, nil, nil)

	s.handleCommand(context.Background(), command(1, "/open"))

	assert.Empty(t, s.outbox)
	complaints.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandleCommand_Stats(t *testing.T) {
	complaints := new(MockComplaints)
	complaints.On("List", mock.Anything, models.ComplaintStatus("")).Return([]models.Complaint{
		{Status: models.ComplaintUnderReview}, {Status: models.ComplaintResolved}, {Status: models.ComplaintResolved},
	}, nil)
	reservations := new(MockReservations)
	reservations.On("List", mock.Anything, models.ReservationStatus("")).Return([]models.Reservation{
		{Status: models.ReservationApproved},
	}, nil)
	s := newBotService(new(MockSender), adminChat, complaints, reservations, nil, nil)

	s.handleCommand(context.Background(), command(adminChat, "/stats"))

	text := queuedText(t, s)
	assert.Contains(t, text, "Complaints: 3 total, 1 under review, 2 resolved, 0 rejected")
	assert.Contains(t, text, "Reservations: 1 total, 0 pending, 1 approved, 0 rejected")
}

func TestHandleCommand_PendingError(t *testing.T) {
	reservations := new(MockReservations)
	reservations.On("List", mock.Anything, models.ReservationPending).Return([]models.Reservation(nil), errors.New("db down"))
	s := newBotService(new(MockSender), adminChat, nil, reservations, nil, nil)

	s.handleCommand(context.Background(), command(adminChat, "/pending"))

	assert.Equal(t, "Could not load reservations.", queuedText(t, s))
}

func TestWritePump_SendsQueuedMessages(t *testing.T) {
	sender := new(MockSender)
	sent := make(chan struct{}, 1)
	sender.On("Send", mock.Anything).Return(nil).Run(func(mock.Arguments) { sent <- struct{}{} })
	s := newBotService(sender, adminChat, nil, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Run(ctx)
	s.ReservationRequested(models.Reservation{PropertyName: "Heritage Villa in Jaipur"})

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not sent")
	}
	sender.AssertNumberOfCalls(t, "Send", 1)
}

var _ Notifier = (*BotService)(nil)
var _ Notifier = NopNotifier{}
