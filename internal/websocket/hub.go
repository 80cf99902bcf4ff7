package websocket

import (
	"context"
	"sync"
)

type hubOpKind int

const (
	opRegister hubOpKind = iota
	opUnregister
	opSubscribe
	opUnsubscribe
)

// hubOp is one queued change to hub membership. All kinds share a single
// channel so they are applied in the order they were issued.
type hubOp struct {
	kind     hubOpKind
	client   *Client
	channels []string
}

// Hub manages WebSocket client connections and channel subscriptions
type Hub struct {
	mu sync.RWMutex

	// clients maps client ID to client (for cleanup)
	clients map[string]*Client

	// channels maps channel name to set of clients subscribed to it
	channels map[string]map[*Client]struct{}

	ops chan hubOp
}

func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		channels: make(map[string]map[*Client]struct{}),
		ops:      make(chan hubOp, 1024),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-h.ops:
			h.apply(op)
		}
	}
}

func (h *Hub) apply(op hubOp) {
	switch op.kind {
	case opRegister:
		h.addClient(op.client, op.channels)
	case opUnregister:
		h.removeClient(op.client)
	case opSubscribe:
		h.subscribeToChannel(op.client, op.channels[0])
	case opUnsubscribe:
		h.unsubscribeFromChannel(op.client, op.channels[0])
	}
}

// Register adds a client already subscribed to channels.
func (h *Hub) Register(client *Client, channels ...string) {
	h.ops <- hubOp{kind: opRegister, client: client, channels: channels}
}

func (h *Hub) Unregister(client *Client) {
	h.ops <- hubOp{kind: opUnregister, client: client}
}

func (h *Hub) Subscribe(client *Client, channel string) {
	h.ops <- hubOp{kind: opSubscribe, client: client, channels: []string{channel}}
}

func (h *Hub) Unsubscribe(client *Client, channel string) {
	h.ops <- hubOp{kind: opUnsubscribe, client: client, channels: []string{channel}}
}

// Broadcast sends a message to all clients subscribed to a channel
func (h *Hub) Broadcast(channel string, payload []byte) {
	h.mu.RLock()
	for c := range h.channels[channel] {
		c.SendMessage(payload)
	}
	h.mu.RUnlock()
}

// Publish fans events out to local clients. It lets the hub stand in for
// Redis pub/sub when the service runs without Redis.
func (h *Hub) Publish(_ context.Context, channel string, payload []byte) error {
	h.Broadcast(channel, payload)
	return nil
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) GetChannelSubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

func (h *Hub) addClient(client *Client, channels []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	for _, channel := range channels {
		h.addSubscriber(client, channel)
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for _, channel := range client.GetChannels() {
		if subscribers, ok := h.channels[channel]; ok {
			delete(subscribers, client)
			if len(subscribers) == 0 {
				delete(h.channels, channel)
			}
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)
}

func (h *Hub) subscribeToChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Send is closed once a client is removed.
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	h.addSubscriber(client, channel)
}

func (h *Hub) addSubscriber(client *Client, channel string) {
	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]struct{})
	}
	h.channels[channel][client] = struct{}{}
	client.Subscribe(channel)
}

func (h *Hub) unsubscribeFromChannel(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subscribers, ok := h.channels[channel]; ok {
		delete(subscribers, client)
		if len(subscribers) == 0 {
			delete(h.channels, channel)
		}
	}

	client.Unsubscribe(channel)
}
