package websocket

import (
	"context"

	"chat-animation/internal/events"
)

// RedisBridge relays events published by any service instance to the
// clients connected to this one.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

func (b *RedisBridge) Run(ctx context.Context, channels ...string) error {
	if len(channels) == 0 {
		channels = []string{events.ChannelAnimationSettings}
	}
	return b.subscriber.Subscribe(ctx, channels, b.hub.Broadcast)
}
