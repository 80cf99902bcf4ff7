package animation

import (
	"encoding/json"
	"fmt"

	app_errors "chat-animation/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type commonJSON struct {
	Type         Type           `json:"type"`
	Duration     Duration       `json:"duration"`
	YPosition    TimingFunction `json:"yPosition"`
	XPosition    TimingFunction `json:"xPosition"`
	BubbleShape  TimingFunction `json:"bubbleShape"`
	TextPosition TimingFunction `json:"textPosition"`
	ColorChange  TimingFunction `json:"colorChange"`
	TimeAppears  TimingFunction `json:"timeAppears"`
}

type emojiJSON struct {
	Type        Type           `json:"type"`
	Duration    Duration       `json:"duration"`
	YPosition   TimingFunction `json:"yPosition"`
	XPosition   TimingFunction `json:"xPosition"`
	EmojiScale  TimingFunction `json:"emojiScale"`
	TimeAppears TimingFunction `json:"timeAppears"`
}

// The *Wire types mirror the encoded layout with pointer fields so that a
// missing key can be told apart from a zero value.
type pointWire struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

type timingWire struct {
	StartTimeOffset *float64   `json:"startTimeOffset" validate:"required"`
	EndTimeOffset   *float64   `json:"endTimeOffset" validate:"required"`
	ControlPoint1   *pointWire `json:"controlPoint1" validate:"required"`
	ControlPoint2   *pointWire `json:"controlPoint2" validate:"required"`
}

func (w *timingWire) value() TimingFunction {
	return TimingFunction{
		StartTimeOffset: *w.StartTimeOffset,
		EndTimeOffset:   *w.EndTimeOffset,
		ControlPoint1:   Point{X: *w.ControlPoint1.X, Y: *w.ControlPoint1.Y},
		ControlPoint2:   Point{X: *w.ControlPoint2.X, Y: *w.ControlPoint2.Y},
	}
}

// UnmarshalJSON requires all four keys; a partial curve is a decode error.
func (tf *TimingFunction) UnmarshalJSON(data []byte) error {
	var wire timingWire
	if err := decodeWire(data, &wire); err != nil {
		return err
	}
	*tf = wire.value()
	return nil
}

type commonWire struct {
	Type         *Type       `json:"type" validate:"required"`
	Duration     *Duration   `json:"duration" validate:"required"`
	YPosition    *timingWire `json:"yPosition" validate:"required"`
	XPosition    *timingWire `json:"xPosition" validate:"required"`
	BubbleShape  *timingWire `json:"bubbleShape" validate:"required"`
	TextPosition *timingWire `json:"textPosition" validate:"required"`
	ColorChange  *timingWire `json:"colorChange" validate:"required"`
	TimeAppears  *timingWire `json:"timeAppears" validate:"required"`
}

type emojiWire struct {
	Type        *Type       `json:"type" validate:"required"`
	Duration    *Duration   `json:"duration" validate:"required"`
	YPosition   *timingWire `json:"yPosition" validate:"required"`
	XPosition   *timingWire `json:"xPosition" validate:"required"`
	EmojiScale  *timingWire `json:"emojiScale" validate:"required"`
	TimeAppears *timingWire `json:"timeAppears" validate:"required"`
}

func decodeWire(data []byte, wire any) error {
	if err := json.Unmarshal(data, wire); err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrDecode, err)
	}
	if err := validate.Struct(wire); err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrDecode, err)
	}
	return nil
}

func (s *CommonSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(commonJSON{
		Type:         s.kind,
		Duration:     s.Duration,
		YPosition:    s.YPosition,
		XPosition:    s.XPosition,
		BubbleShape:  s.BubbleShape,
		TextPosition: s.TextPosition,
		ColorChange:  s.ColorChange,
		TimeAppears:  s.TimeAppears,
	})
}

func (s *CommonSettings) UnmarshalJSON(data []byte) error {
	var wire commonWire
	if err := decodeWire(data, &wire); err != nil {
		return err
	}
	if *wire.Type == TypeEmoji {
		return fmt.Errorf("%w: emoji settings cannot be decoded as common settings", app_errors.ErrDecode)
	}
	*s = CommonSettings{
		SharedSettings: SharedSettings{
			kind:        *wire.Type,
			Duration:    *wire.Duration,
			YPosition:   wire.YPosition.value(),
			XPosition:   wire.XPosition.value(),
			TimeAppears: wire.TimeAppears.value(),
		},
		BubbleShape:  wire.BubbleShape.value(),
		TextPosition: wire.TextPosition.value(),
		ColorChange:  wire.ColorChange.value(),
	}
	return nil
}

// EncodeJSON returns the compact encoding stored under the type's key.
func (s *CommonSettings) EncodeJSON() ([]byte, error) {
	return encodeSettings(s)
}

func (s *EmojiSettings) MarshalJSON() ([]byte, error) {
	return json.Marshal(emojiJSON{
		Type:        s.kind,
		Duration:    s.Duration,
		YPosition:   s.YPosition,
		XPosition:   s.XPosition,
		EmojiScale:  s.EmojiScale,
		TimeAppears: s.TimeAppears,
	})
}

func (s *EmojiSettings) UnmarshalJSON(data []byte) error {
	var wire emojiWire
	if err := decodeWire(data, &wire); err != nil {
		return err
	}
	if *wire.Type != TypeEmoji {
		return fmt.Errorf("%w: %s settings cannot be decoded as emoji settings", app_errors.ErrDecode, *wire.Type)
	}
	*s = EmojiSettings{
		SharedSettings: SharedSettings{
			kind:        TypeEmoji,
			Duration:    *wire.Duration,
			YPosition:   wire.YPosition.value(),
			XPosition:   wire.XPosition.value(),
			TimeAppears: wire.TimeAppears.value(),
		},
		EmojiScale: wire.EmojiScale.value(),
	}
	return nil
}

func (s *EmojiSettings) EncodeJSON() ([]byte, error) {
	return encodeSettings(s)
}

func encodeSettings(s json.Marshaler) ([]byte, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrEncode, err)
	}
	return data, nil
}

func DecodeCommonSettings(data []byte) (*CommonSettings, error) {
	var s CommonSettings
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &s, nil
}

func DecodeEmojiSettings(data []byte) (*EmojiSettings, error) {
	var s EmojiSettings
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeSettings decodes data in the shape t requires and rejects payloads
// tagged with a different type.
func DecodeSettings(t Type, data []byte) (Settings, error) {
	var (
		s   Settings
		err error
	)
	switch {
	case t == TypeEmoji:
		s, err = DecodeEmojiSettings(data)
	case t.IsValid():
		s, err = DecodeCommonSettings(data)
	default:
		return nil, fmt.Errorf("%w: unknown animation type %q", app_errors.ErrInvalidInput, t)
	}
	if err != nil {
		return nil, err
	}
	if s.Type() != t {
		return nil, fmt.Errorf("%w: payload is tagged %s, expected %s", app_errors.ErrDecode, s.Type(), t)
	}
	return s, nil
}
