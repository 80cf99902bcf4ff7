package animation

import (
	"encoding/json"
	"errors"
	"fmt"

	app_errors "chat-animation/pkg/errors"
)

// SettingsSet holds exactly one settings instance per message type. The
// emoji slot always has the emoji shape; every other slot is common-shaped.
type SettingsSet struct {
	SmallMessage *CommonSettings
	BigMessage   *CommonSettings
	LinkPreview  *CommonSettings
	Emoji        *EmojiSettings
	Sticker      *CommonSettings
	VoiceMessage *CommonSettings
	VideoMessage *CommonSettings
}

// NewSettingsSet returns a set populated with the built-in defaults.
func NewSettingsSet() *SettingsSet {
	return &SettingsSet{
		SmallMessage: NewCommonSettings(TypeSmallMessage),
		BigMessage:   NewCommonSettings(TypeBigMessage),
		LinkPreview:  NewCommonSettings(TypeLinkPreview),
		Emoji:        NewEmojiSettings(),
		Sticker:      NewCommonSettings(TypeSticker),
		VoiceMessage: NewCommonSettings(TypeVoiceMessage),
		VideoMessage: NewCommonSettings(TypeVideoMessage),
	}
}

// Settings returns the slot for t, or nil for an unknown type.
func (set *SettingsSet) Settings(t Type) Settings {
	if t == TypeEmoji {
		return set.Emoji
	}
	if c := set.Common(t); c != nil {
		return c
	}
	return nil
}

// Common returns the common-shaped slot for t; nil for TypeEmoji or unknown types.
func (set *SettingsSet) Common(t Type) *CommonSettings {
	switch t {
	case TypeSmallMessage:
		return set.SmallMessage
	case TypeBigMessage:
		return set.BigMessage
	case TypeLinkPreview:
		return set.LinkPreview
	case TypeSticker:
		return set.Sticker
	case TypeVoiceMessage:
		return set.VoiceMessage
	case TypeVideoMessage:
		return set.VideoMessage
	}
	return nil
}

// Update copies the named slots from other, or every slot when types is empty.
func (set *SettingsSet) Update(other *SettingsSet, types ...Type) {
	for _, t := range selectTypes(types) {
		if t == TypeEmoji {
			set.Emoji.Update(other.Emoji)
			continue
		}
		if dst, src := set.Common(t), other.Common(t); dst != nil && src != nil {
			dst.Update(src)
		}
	}
}

// RestoreDefaults resets the named slots, or every slot when types is empty.
func (set *SettingsSet) RestoreDefaults(types ...Type) {
	for _, t := range selectTypes(types) {
		if s := set.Settings(t); s != nil {
			s.RestoreDefaults()
		}
	}
}

func (set *SettingsSet) Clone() *SettingsSet {
	clone := &SettingsSet{}
	clone.SmallMessage = set.SmallMessage.Clone().(*CommonSettings)
	clone.BigMessage = set.BigMessage.Clone().(*CommonSettings)
	clone.LinkPreview = set.LinkPreview.Clone().(*CommonSettings)
	clone.Emoji = set.Emoji.Clone().(*EmojiSettings)
	clone.Sticker = set.Sticker.Clone().(*CommonSettings)
	clone.VoiceMessage = set.VoiceMessage.Clone().(*CommonSettings)
	clone.VideoMessage = set.VideoMessage.Clone().(*CommonSettings)
	return clone
}

func (set *SettingsSet) Equal(other *SettingsSet) bool {
	for _, t := range AllTypes() {
		if !Equal(set.Settings(t), other.Settings(t)) {
			return false
		}
	}
	return true
}

func selectTypes(types []Type) []Type {
	if len(types) == 0 {
		return AllTypes()
	}
	return types
}

type settingsDocument struct {
	SmallMessage *CommonSettings `json:"smallMessageSettings" validate:"required"`
	BigMessage   *CommonSettings `json:"bigMessageSettings" validate:"required"`
	LinkPreview  *CommonSettings `json:"linkPreviewSettings" validate:"required"`
	Emoji        *EmojiSettings  `json:"emojiSettings" validate:"required"`
	Sticker      *CommonSettings `json:"stickerSettings" validate:"required"`
	VoiceMessage *CommonSettings `json:"voiceMessageSettings" validate:"required"`
	VideoMessage *CommonSettings `json:"videoMessageSettings" validate:"required"`
}

func (set *SettingsSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(settingsDocument(*set))
}

func (set *SettingsSet) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeSettingsSet(data)
	if err != nil {
		return err
	}
	*set = *decoded
	return nil
}

// EncodeJSON renders the whole set as one indented export document.
func (set *SettingsSet) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(settingsDocument(*set), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrEncode, err)
	}
	return data, nil
}

// DecodeSettingsSet parses an export document. Unlike the per-key load path
// it fails on any malformed or missing slot.
func DecodeSettingsSet(data []byte) (*SettingsSet, error) {
	var doc settingsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, wrapDecode(err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrDecode, err)
	}
	set := SettingsSet(doc)
	for _, t := range AllTypes() {
		if got := set.Settings(t).Type(); got != t {
			return nil, fmt.Errorf("%w: slot for %s holds %s settings", app_errors.ErrDecode, t, got)
		}
	}
	return &set, nil
}

func wrapDecode(err error) error {
	if errors.Is(err, app_errors.ErrDecode) {
		return err
	}
	return fmt.Errorf("%w: %v", app_errors.ErrDecode, err)
}
