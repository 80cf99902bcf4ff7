package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"chat-animation/internal/domain/animation"
	"chat-animation/internal/events"
	"chat-animation/internal/repository"
	app_errors "chat-animation/pkg/errors"
	"chat-animation/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Envelope
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	var env events.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return err
	}
	p.mu.Lock()
	p.events = append(p.events, env)
	p.mu.Unlock()
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

func newService(t *testing.T) (*AnimationSettingsService, *repository.MemoryKeyValueStore, *recordingPublisher) {
	t.Helper()
	store := repository.NewMemoryKeyValueStore()
	pub := &recordingPublisher{}
	m := NewAnimationSettingsManager(context.Background(), store, logger.NewNop(), WithExportDir(t.TempDir()))
	return NewAnimationSettingsService(m, pub, logger.NewNop()), store, pub
}

func TestService_ReplaceApply(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := newService(t)

	payload, err := animation.NewCommonSettings(animation.TypeLinkPreview, animation.WithDuration(animation.DurationFast)).EncodeJSON()
	require.NoError(t, err)

	updated, err := svc.Replace(ctx, animation.TypeLinkPreview, payload)
	require.NoError(t, err)
	assert.Equal(t, animation.DurationFast, updated.Shared().Duration)
	assert.Zero(t, store.Len())

	require.NoError(t, svc.Apply(ctx))
	assert.Equal(t, 7, store.Len())
	assert.Equal(t, []string{events.EventTypeSettingsUpdated, events.EventTypeSettingsApplied}, pub.types())

	got, err := svc.Get(ctx, animation.TypeLinkPreview)
	require.NoError(t, err)
	assert.Equal(t, animation.DurationFast, got.Shared().Duration)
}

func TestService_ReplaceRejectsWrongPayload(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newService(t)

	emoji, err := animation.NewEmojiSettings().EncodeJSON()
	require.NoError(t, err)

	_, err = svc.Replace(ctx, animation.TypeSticker, emoji)
	assert.ErrorIs(t, err, app_errors.ErrDecode)

	_, err = svc.Replace(ctx, animation.Type("Gif"), emoji)
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
	assert.Empty(t, pub.types())
}

func TestService_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	got, err := svc.Get(ctx, animation.TypeEmoji)
	require.NoError(t, err)
	got.Shared().Duration = animation.DurationSlow

	again, err := svc.Get(ctx, animation.TypeEmoji)
	require.NoError(t, err)
	assert.Equal(t, animation.DefaultDuration(animation.TypeEmoji), again.Shared().Duration)
}

func TestService_ImportRestore(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := newService(t)

	source := animation.NewSettingsSet()
	source.Sticker.Duration = animation.DurationSlow
	source.Emoji.Duration = animation.DurationFast
	doc, err := source.EncodeJSON()
	require.NoError(t, err)

	set, err := svc.Import(ctx, doc, true, animation.TypeSticker)
	require.NoError(t, err)
	assert.Equal(t, animation.DurationSlow, set.Sticker.Duration)
	assert.Equal(t, animation.DefaultDuration(animation.TypeEmoji), set.Emoji.Duration)
	assert.Equal(t, 7, store.Len())

	set = svc.Restore(ctx)
	assert.True(t, set.Equal(animation.NewSettingsSet()))
	assert.Equal(t, []string{events.EventTypeSettingsImported, events.EventTypeSettingsRestored}, pub.types())

	_, err = svc.Import(ctx, []byte("not json"), false)
	assert.ErrorIs(t, err, app_errors.ErrDecode)
}

func TestService_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	payload, err := animation.NewCommonSettings(animation.TypeSmallMessage).EncodeJSON()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Replace(ctx, animation.TypeSmallMessage, payload)
			_ = svc.List(ctx)
			_ = svc.Apply(ctx)
		}()
	}
	wg.Wait()
}
