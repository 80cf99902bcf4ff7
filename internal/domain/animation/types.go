package animation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	app_errors "chat-animation/pkg/errors"
)

// Type identifies the kind of message whose send animation is configured.
type Type string

const (
	TypeSmallMessage Type = "Small"
	TypeBigMessage   Type = "Big"
	TypeLinkPreview  Type = "LinkPreview"
	TypeEmoji        Type = "Emoji"
	TypeSticker      Type = "Sticker"
	TypeVoiceMessage Type = "Voice"
	TypeVideoMessage Type = "Video"
)

type typeInfo struct {
	description string
	storageKey  string
}

// Storage keys are fixed and must never be derived from caller input.
var typeTable = map[Type]typeInfo{
	TypeSmallMessage: {description: "Small Message", storageKey: "ChatAnimationSettingsForSmallType"},
	TypeBigMessage:   {description: "Big Message", storageKey: "ChatAnimationSettingsForBigType"},
	TypeLinkPreview:  {description: "Link with Preview", storageKey: "ChatAnimationSettingsForLinkPreviewType"},
	TypeEmoji:        {description: "Single Emoji", storageKey: "ChatAnimationSettingsForEmojiType"},
	TypeSticker:      {description: "Sticker", storageKey: "ChatAnimationSettingsForStickerType"},
	TypeVoiceMessage: {description: "Voice Message", storageKey: "ChatAnimationSettingsForVoiceType"},
	TypeVideoMessage: {description: "Video Message", storageKey: "ChatAnimationSettingsForVideoType"},
}

// AllTypes returns every message type in display order.
func AllTypes() []Type {
	return []Type{
		TypeSmallMessage,
		TypeBigMessage,
		TypeLinkPreview,
		TypeEmoji,
		TypeSticker,
		TypeVoiceMessage,
		TypeVideoMessage,
	}
}

// ParseType resolves an identifier such as "LinkPreview" ignoring case.
func ParseType(value string) (Type, error) {
	value = strings.TrimSpace(value)
	for _, t := range AllTypes() {
		if strings.EqualFold(string(t), value) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown animation type %q", app_errors.ErrInvalidInput, value)
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	_, ok := typeTable[t]
	return ok
}

func (t Type) Description() string {
	return typeTable[t].description
}

// StorageKey is the key-value store key holding this type's settings.
func (t Type) StorageKey() string {
	return typeTable[t].storageKey
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := Type(raw)
	if !parsed.IsValid() {
		return fmt.Errorf("unknown animation type %q", raw)
	}
	*t = parsed
	return nil
}

// Duration is the total animation length in seconds.
type Duration float64

const (
	DurationFast   Duration = 0.5
	DurationMedium Duration = 0.75
	DurationSlow   Duration = 1.0
)

// AllDurations returns the speed tiers from fastest to slowest.
func AllDurations() []Duration {
	return []Duration{DurationFast, DurationMedium, DurationSlow}
}

// ParseDuration accepts a tier name (fast, medium, slow) or its value in seconds.
func ParseDuration(value string) (Duration, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, d := range AllDurations() {
		if d.Name() == value {
			return d, nil
		}
	}
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		if d := Duration(seconds); d.IsValid() {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown animation duration %q", app_errors.ErrInvalidInput, value)
}

func (d Duration) IsValid() bool {
	switch d {
	case DurationFast, DurationMedium, DurationSlow:
		return true
	}
	return false
}

// Value returns the duration in seconds.
func (d Duration) Value() float64 {
	return float64(d)
}

// MaxValue is the frame count shown next to the duration in the editor.
func (d Duration) MaxValue() float64 {
	switch d {
	case DurationFast:
		return 30
	case DurationMedium:
		return 45
	case DurationSlow:
		return 60
	}
	return 0
}

func (d Duration) Description() string {
	return strconv.Itoa(int(d.MaxValue())) + "f"
}

func (d Duration) Name() string {
	switch d {
	case DurationFast:
		return "fast"
	case DurationMedium:
		return "medium"
	case DurationSlow:
		return "slow"
	}
	return ""
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := Duration(raw)
	if !parsed.IsValid() {
		return fmt.Errorf("unknown animation duration %v", raw)
	}
	*d = parsed
	return nil
}

// Property names one animated aspect of a message bubble.
type Property string

const (
	PropertyYPosition    Property = "yPosition"
	PropertyXPosition    Property = "xPosition"
	PropertyBubbleShape  Property = "bubbleShape"
	PropertyTextPosition Property = "textPosition"
	PropertyColorChange  Property = "colorChange"
	PropertyEmojiScale   Property = "emojiScale"
	PropertyTimeAppears  Property = "timeAppears"
)

// Properties lists the curves carried by settings of type t, in encoding order.
func Properties(t Type) []Property {
	if t == TypeEmoji {
		return []Property{PropertyYPosition, PropertyXPosition, PropertyEmojiScale, PropertyTimeAppears}
	}
	return []Property{
		PropertyYPosition,
		PropertyXPosition,
		PropertyBubbleShape,
		PropertyTextPosition,
		PropertyColorChange,
		PropertyTimeAppears,
	}
}
