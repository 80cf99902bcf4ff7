package services

import (
	"context"
	"fmt"
	"sync"

	"chat-animation/internal/domain/animation"
	"chat-animation/internal/events"
	app_errors "chat-animation/pkg/errors"
	"chat-animation/pkg/logger"
)

// AnimationSettingsService serialises access to one manager for concurrent
// callers and announces changes on the settings channel.
type AnimationSettingsService struct {
	mu        sync.Mutex
	manager   *AnimationSettingsManager
	publisher events.Publisher
	logger    *logger.Logger
}

func NewAnimationSettingsService(manager *AnimationSettingsManager, publisher events.Publisher, l *logger.Logger) *AnimationSettingsService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &AnimationSettingsService{manager: manager, publisher: publisher, logger: l}
}

func (s *AnimationSettingsService) List(ctx context.Context) *animation.SettingsSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Snapshot()
}

func (s *AnimationSettingsService) Get(ctx context.Context, t animation.Type) (animation.Settings, error) {
	if !t.IsValid() {
		return nil, app_errors.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Settings(t).Clone(), nil
}

// Replace overwrites the in-memory settings for t with the encoded payload.
// Changes are not persisted until Apply.
func (s *AnimationSettingsService) Replace(ctx context.Context, t animation.Type, data []byte) (animation.Settings, error) {
	if !t.IsValid() {
		return nil, app_errors.ErrNotFound
	}
	decoded, err := animation.DecodeSettings(t, data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	live := s.manager.Settings(t)
	err = animation.UpdateSettings(live, decoded)
	result := live.Clone()
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidInput, err)
	}

	s.publish(ctx, events.EventTypeSettingsUpdated, []animation.Type{t}, result)
	return result, nil
}

// Apply persists every slot to the key-value store.
func (s *AnimationSettingsService) Apply(ctx context.Context) error {
	s.mu.Lock()
	err := s.manager.ApplyChanges(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventTypeSettingsApplied, nil, nil)
	return nil
}

// Restore resets the named slots to defaults, all slots when types is empty.
func (s *AnimationSettingsService) Restore(ctx context.Context, types ...animation.Type) *animation.SettingsSet {
	s.mu.Lock()
	s.manager.RestoreDefaults(types...)
	snapshot := s.manager.Snapshot()
	s.mu.Unlock()

	s.publish(ctx, events.EventTypeSettingsRestored, types, nil)
	return snapshot
}

func (s *AnimationSettingsService) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.GenerateJSONData()
}

func (s *AnimationSettingsService) ExportFile(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.GenerateJSONFile()
}

// Import replaces the named slots (all when empty) from an export document.
// When apply is set the result is persisted straight away.
func (s *AnimationSettingsService) Import(ctx context.Context, data []byte, apply bool, types ...animation.Type) (*animation.SettingsSet, error) {
	s.mu.Lock()
	if err := s.manager.Import(data, types...); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	var applyErr error
	if apply {
		applyErr = s.manager.ApplyChanges(ctx)
	}
	snapshot := s.manager.Snapshot()
	s.mu.Unlock()

	s.publish(ctx, events.EventTypeSettingsImported, types, nil)
	if applyErr != nil {
		return snapshot, applyErr
	}
	return snapshot, nil
}

func (s *AnimationSettingsService) publish(ctx context.Context, eventType string, types []animation.Type, payload any) {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	msg, err := events.NewEnvelope(eventType, names, payload)
	if err != nil {
		s.logger.WithContext(ctx).Errorf("encode %s event: %v", eventType, err)
		return
	}
	if err := s.publisher.Publish(ctx, events.ChannelAnimationSettings, msg); err != nil {
		s.logger.WithContext(ctx).Warnf("publish %s event: %v", eventType, err)
	}
}
