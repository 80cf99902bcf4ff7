package animation

import "fmt"

// Settings is the capability shared by every settings shape. Callers that
// need shape-specific curves switch on the concrete type.
type Settings interface {
	Type() Type
	Shared() *SharedSettings
	// Curve returns the curve driving p, or nil when this shape has no such curve.
	Curve(p Property) *TimingFunction
	RestoreDefaults()
	EncodeJSON() ([]byte, error)
	Clone() Settings
}

// SharedSettings are the fields present on every settings shape.
type SharedSettings struct {
	kind        Type
	Duration    Duration
	YPosition   TimingFunction
	XPosition   TimingFunction
	TimeAppears TimingFunction
}

func (s *SharedSettings) Type() Type {
	return s.kind
}

func (s *SharedSettings) Shared() *SharedSettings {
	return s
}

func (s *SharedSettings) sharedCurve(p Property) *TimingFunction {
	switch p {
	case PropertyYPosition:
		return &s.YPosition
	case PropertyXPosition:
		return &s.XPosition
	case PropertyTimeAppears:
		return &s.TimeAppears
	}
	return nil
}

func (s *SharedSettings) update(other *SharedSettings) {
	s.Duration = other.Duration
	s.YPosition.Update(other.YPosition)
	s.XPosition.Update(other.XPosition)
	s.TimeAppears.Update(other.TimeAppears)
}

// Option overrides a built-in default when constructing settings.
type Option func(*options)

type options struct {
	duration *Duration
	curves   map[Property]TimingFunction
}

func WithDuration(d Duration) Option {
	return func(o *options) {
		o.duration = &d
	}
}

// WithCurve replaces the default curve for p. Properties the shape does not
// carry are ignored.
func WithCurve(p Property, tf TimingFunction) Option {
	return func(o *options) {
		if o.curves == nil {
			o.curves = make(map[Property]TimingFunction)
		}
		o.curves[p] = tf
	}
}

func applyOptions(s Settings, opts []Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.duration != nil {
		s.Shared().Duration = *o.duration
	}
	for p, tf := range o.curves {
		if c := s.Curve(p); c != nil {
			c.Update(tf)
		}
	}
}

func applyDefaultCurves(s Settings) {
	t := s.Type()
	s.Shared().Duration = DefaultDuration(t)
	for _, p := range Properties(t) {
		s.Curve(p).Update(DefaultCurve(t, p))
	}
}

// CommonSettings configures every message type except TypeEmoji.
type CommonSettings struct {
	SharedSettings
	BubbleShape  TimingFunction
	TextPosition TimingFunction
	ColorChange  TimingFunction
}

// NewCommonSettings builds defaults for t. It panics when t is TypeEmoji or
// not a known type; use NewSettings when the shape is not known statically.
func NewCommonSettings(t Type, opts ...Option) *CommonSettings {
	if t == TypeEmoji || !t.IsValid() {
		panic(fmt.Sprintf("animation: common settings cannot hold type %q", t))
	}
	s := &CommonSettings{SharedSettings: SharedSettings{kind: t}}
	applyDefaultCurves(s)
	applyOptions(s, opts)
	return s
}

func (s *CommonSettings) Curve(p Property) *TimingFunction {
	switch p {
	case PropertyBubbleShape:
		return &s.BubbleShape
	case PropertyTextPosition:
		return &s.TextPosition
	case PropertyColorChange:
		return &s.ColorChange
	}
	return s.sharedCurve(p)
}

// Update copies duration and every curve from other. The type is kept.
func (s *CommonSettings) Update(other *CommonSettings) {
	s.SharedSettings.update(&other.SharedSettings)
	s.BubbleShape.Update(other.BubbleShape)
	s.TextPosition.Update(other.TextPosition)
	s.ColorChange.Update(other.ColorChange)
}

func (s *CommonSettings) RestoreDefaults() {
	s.Update(NewCommonSettings(s.kind))
}

func (s *CommonSettings) Clone() Settings {
	clone := *s
	return &clone
}

// EmojiSettings configures the single-emoji animation, which has no bubble.
type EmojiSettings struct {
	SharedSettings
	EmojiScale TimingFunction
}

func NewEmojiSettings(opts ...Option) *EmojiSettings {
	s := &EmojiSettings{SharedSettings: SharedSettings{kind: TypeEmoji}}
	applyDefaultCurves(s)
	applyOptions(s, opts)
	return s
}

func (s *EmojiSettings) Curve(p Property) *TimingFunction {
	if p == PropertyEmojiScale {
		return &s.EmojiScale
	}
	return s.sharedCurve(p)
}

func (s *EmojiSettings) Update(other *EmojiSettings) {
	s.SharedSettings.update(&other.SharedSettings)
	s.EmojiScale.Update(other.EmojiScale)
}

func (s *EmojiSettings) RestoreDefaults() {
	s.Update(NewEmojiSettings())
}

func (s *EmojiSettings) Clone() Settings {
	clone := *s
	return &clone
}

// NewSettings returns defaults for t in the shape that type requires.
func NewSettings(t Type, opts ...Option) (Settings, error) {
	switch {
	case t == TypeEmoji:
		return NewEmojiSettings(opts...), nil
	case t.IsValid():
		return NewCommonSettings(t, opts...), nil
	}
	return nil, fmt.Errorf("unknown animation type %q", t)
}

// UpdateSettings copies src into dst when both have the same shape and type.
func UpdateSettings(dst, src Settings) error {
	if dst.Type() != src.Type() {
		return fmt.Errorf("cannot update %s settings from %s settings", dst.Type(), src.Type())
	}
	switch d := dst.(type) {
	case *CommonSettings:
		if s, ok := src.(*CommonSettings); ok {
			d.Update(s)
			return nil
		}
	case *EmojiSettings:
		if s, ok := src.(*EmojiSettings); ok {
			d.Update(s)
			return nil
		}
	}
	return fmt.Errorf("settings shape mismatch for %s", dst.Type())
}

// Equal reports whether a and b have the same shape and field values.
func Equal(a, b Settings) bool {
	switch x := a.(type) {
	case *CommonSettings:
		y, ok := b.(*CommonSettings)
		return ok && *x == *y
	case *EmojiSettings:
		y, ok := b.(*EmojiSettings)
		return ok && *x == *y
	}
	return false
}
