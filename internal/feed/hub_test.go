package feed_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"aura/backend/internal/feed"
	"aura/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockClient struct {
	id     string
	recv   chan models.Event
	mu     sync.Mutex
	closed int
}

func newMockClient(id string, buffer int) *MockClient {
	return &MockClient{id: id, recv: make(chan models.Event, buffer)}
}

func (c *MockClient) GetClientID() string                 { return c.id }
func (c *MockClient) GetSendChannel() chan<- models.Event { return c.recv }
func (c *MockClient) Run()                                {}

func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
}

func (c *MockClient) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) (*feed.Hub, chan models.Event, context.CancelFunc) {
	t.Helper()
	events := make(chan models.Event)
	hub := feed.NewHub(feed.SourceFunc(func(context.Context) <-chan models.Event { return events }), nil)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	return hub, events, cancel
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub, _, cancel := startHub(t)
	defer cancel()

	client := newMockClient("admin-1", 4)
	hub.RegisterCh <- client
	assert.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	hub.UnregisterCh <- client
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, client.closeCount())
}

func TestHub_BroadcastsToAllClients(t *testing.T) {
	hub, events, cancel := startHub(t)
	defer cancel()

	a := newMockClient("a", 4)
	b := newMockClient("b", 4)
	hub.RegisterCh <- a
	hub.RegisterCh <- b

	events <- models.Event{Kind: models.EventComplaintCreated, RecordID: "c1"}

	for _, c := range []*MockClient{a, b} {
		select {
		case got := <-c.recv:
			assert.Equal(t, "c1", got.RecordID)
		case <-time.After(time.Second):
			t.Fatalf("client %s got no event", c.id)
		}
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub, events, cancel := startHub(t)
	defer cancel()

	slow := newMockClient("slow", 0)
	hub.RegisterCh <- slow
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	events <- models.Event{Kind: models.EventReservationCreated, RecordID: "r1"}

	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, slow.closeCount())
}

func TestHub_ClosesClientsOnShutdown(t *testing.T) {
	hub, _, cancel := startHub(t)

	client := newMockClient("admin", 1)
	hub.RegisterCh <- client
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 1, client.closeCount())
	assert.Equal(t, 0, hub.Count())
}
