package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"chat-animation/internal/domain/animation"
	"chat-animation/internal/repository"
	app_errors "chat-animation/pkg/errors"
	"chat-animation/pkg/logger"

	"go.uber.org/multierr"
)

// ExportFileName is the document written by GenerateJSONFile.
const ExportFileName = "TelegramChatAnimationSettings.tgios-anim"

// AnimationSettingsManager owns one settings instance per message type and
// moves them between memory and a key-value store. It is not safe for
// concurrent use; AnimationSettingsService adds locking.
type AnimationSettingsManager struct {
	store     repository.KeyValueStore
	logger    *logger.Logger
	exportDir func() (string, error)
	settings  *animation.SettingsSet
}

type ManagerOption func(*AnimationSettingsManager)

// WithExportDir fixes the directory GenerateJSONFile writes into. An empty
// dir keeps the default documents directory.
func WithExportDir(dir string) ManagerOption {
	return func(m *AnimationSettingsManager) {
		if dir != "" {
			m.exportDir = func() (string, error) { return dir, nil }
		}
	}
}

// WithExportDirResolver replaces how the export directory is found.
func WithExportDirResolver(resolve func() (string, error)) ManagerOption {
	return func(m *AnimationSettingsManager) {
		m.exportDir = resolve
	}
}

// NewAnimationSettingsManager loads every slot from store. Slots that are
// missing, unreadable or corrupt silently start from the built-in defaults.
func NewAnimationSettingsManager(ctx context.Context, store repository.KeyValueStore, l *logger.Logger, opts ...ManagerOption) *AnimationSettingsManager {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	m := &AnimationSettingsManager{
		store:     store,
		logger:    l,
		exportDir: documentsDir,
		settings:  animation.NewSettingsSet(),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, t := range animation.AllTypes() {
		loaded, ok := m.load(ctx, t)
		if !ok {
			continue
		}
		if err := animation.UpdateSettings(m.settings.Settings(t), loaded); err != nil {
			m.logger.Warnf("apply loaded %s: %v; using defaults", t.StorageKey(), err)
		}
	}
	return m
}

func (m *AnimationSettingsManager) load(ctx context.Context, t animation.Type) (animation.Settings, bool) {
	data, err := m.store.Get(ctx, t.StorageKey())
	if err != nil {
		if !errors.Is(err, app_errors.ErrStorageMiss) {
			m.logger.Warnf("read %s: %v; using defaults", t.StorageKey(), err)
		}
		return nil, false
	}
	s, err := animation.DecodeSettings(t, data)
	if err != nil {
		m.logger.Warnf("decode %s: %v; using defaults", t.StorageKey(), err)
		return nil, false
	}
	return s, true
}

// Settings returns the live instance for t through the shared capability.
func (m *AnimationSettingsManager) Settings(t animation.Type) animation.Settings {
	return m.settings.Settings(t)
}

// CommonSettings returns the live common-shaped instance, nil for TypeEmoji.
func (m *AnimationSettingsManager) CommonSettings(t animation.Type) *animation.CommonSettings {
	return m.settings.Common(t)
}

func (m *AnimationSettingsManager) EmojiSettings() *animation.EmojiSettings {
	return m.settings.Emoji
}

// Snapshot returns a deep copy detached from the live instances.
func (m *AnimationSettingsManager) Snapshot() *animation.SettingsSet {
	return m.settings.Clone()
}

// ApplyChanges writes every slot under its own key. A failing slot does not
// stop the others; all failures come back together, tagged by type.
func (m *AnimationSettingsManager) ApplyChanges(ctx context.Context) error {
	var errs error
	for _, t := range animation.AllTypes() {
		if err := m.persist(ctx, t); err != nil {
			m.logger.Warnf("persist %s: %v", t.StorageKey(), err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", t, err))
		}
	}
	return errs
}

func (m *AnimationSettingsManager) persist(ctx context.Context, t animation.Type) error {
	data, err := m.settings.Settings(t).EncodeJSON()
	if err != nil {
		return err
	}
	return m.store.Set(ctx, t.StorageKey(), data)
}

// Update copies the named slots from other, or all of them when types is empty.
func (m *AnimationSettingsManager) Update(other *animation.SettingsSet, types ...animation.Type) {
	m.settings.Update(other, types...)
}

// RestoreDefaults resets the named slots, or all of them when types is empty.
func (m *AnimationSettingsManager) RestoreDefaults(types ...animation.Type) {
	m.settings.RestoreDefaults(types...)
}

// GenerateJSONData encodes every slot as one indented export document.
func (m *AnimationSettingsManager) GenerateJSONData() ([]byte, error) {
	return m.settings.EncodeJSON()
}

func (m *AnimationSettingsManager) GenerateJSONString() (string, error) {
	data, err := m.GenerateJSONData()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GenerateJSONFile writes the export document into the export directory and
// returns its path.
func (m *AnimationSettingsManager) GenerateJSONFile() (string, error) {
	dir, err := m.exportDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", app_errors.ErrPathResolution, err)
	}
	if dir == "" {
		return "", app_errors.ErrPathResolution
	}

	data, err := m.GenerateJSONData()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ExportFileName)
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("%w: %v", app_errors.ErrFileWrite, err)
	}
	m.logger.Infof("exported animation settings to %s", path)
	return path, nil
}

// Import decodes an export document and copies the named slots (all when
// types is empty). Nothing changes when data is invalid.
func (m *AnimationSettingsManager) Import(data []byte, types ...animation.Type) error {
	imported, err := DecodeAnimationSettings(data)
	if err != nil {
		return err
	}
	m.Update(imported, types...)
	return nil
}

// DecodeAnimationSettings parses a document produced by GenerateJSONData.
func DecodeAnimationSettings(data []byte) (*animation.SettingsSet, error) {
	return animation.DecodeSettingsSet(data)
}

func documentsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Documents"), nil
}

// writeAtomic writes to a temp file then renames it over path.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
