package animation

type curveKey struct {
	t Type
	p Property
}

func curve(start, end, cp1x, cp1y, cp2x, cp2y float64) TimingFunction {
	return TimingFunction{
		StartTimeOffset: start,
		EndTimeOffset:   end,
		ControlPoint1:   Point{X: cp1x, Y: cp1y},
		ControlPoint2:   Point{X: cp2x, Y: cp2y},
	}
}

// baseCurves holds the preset for each property when a type has no override.
var baseCurves = map[Property]TimingFunction{
	PropertyYPosition:    curve(0, 0, 0.33, 0, 0, 1),
	PropertyXPosition:    curve(0, 0.5, 0.33, 0, 0, 1),
	PropertyBubbleShape:  curve(0, 0.5, 0.33, 0, 0, 1),
	PropertyTextPosition: curve(0, 0.5, 0.33, 0, 0, 1),
	PropertyColorChange:  curve(0, 0.5, 0.33, 0, 0.67, 1),
	PropertyEmojiScale:   curve(0, 0.5, 0.33, 0, 0, 1),
	PropertyTimeAppears:  curve(0, 0.5, 0.33, 0, 0.67, 1),
}

// curveOverrides are the hand-tuned per-type exceptions to baseCurves.
var curveOverrides = map[curveKey]TimingFunction{
	{TypeBigMessage, PropertyTextPosition}:  curve(0, 0.3, 0.33, 0, 0, 1),
	{TypeBigMessage, PropertyBubbleShape}:   curve(0, 0.3, 0.33, 0, 0, 1),
	{TypeLinkPreview, PropertyTimeAppears}:  curve(0.2, 0.3, 0.33, 0, 0.67, 1),
	{TypeEmoji, PropertyTimeAppears}:        curve(0.3, 0.2, 0.33, 0, 0.67, 1),
	{TypeSticker, PropertyXPosition}:        curve(0, 0.4, 0.33, 0, 0, 1),
	{TypeSticker, PropertyTimeAppears}:      curve(0.3, 0.2, 0.33, 0, 0.67, 1),
	{TypeVoiceMessage, PropertyColorChange}: curve(0, 0.3, 0.33, 0, 0.67, 1),
	{TypeVideoMessage, PropertyXPosition}:   curve(0, 0.4, 0.33, 0, 0, 1),
	{TypeVideoMessage, PropertyColorChange}: curve(0.1, 0.4, 0.33, 0, 0.67, 1),
}

var defaultDurations = map[Type]Duration{
	TypeSmallMessage: DurationMedium,
	TypeBigMessage:   DurationMedium,
	TypeLinkPreview:  DurationMedium,
	TypeEmoji:        DurationMedium,
	TypeSticker:      DurationMedium,
	TypeVoiceMessage: DurationMedium,
	TypeVideoMessage: DurationMedium,
}

// DefaultCurve returns the built-in preset for property p of type t.
func DefaultCurve(t Type, p Property) TimingFunction {
	if tf, ok := curveOverrides[curveKey{t, p}]; ok {
		return tf
	}
	if tf, ok := baseCurves[p]; ok {
		return tf
	}
	return NewTimingFunction()
}

func DefaultDuration(t Type) Duration {
	if d, ok := defaultDurations[t]; ok {
		return d
	}
	return DurationMedium
}
