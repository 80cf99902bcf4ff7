package animation

// Point is a 2D coordinate inside the unit square of a timing curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var (
	curveStartPoint = Point{X: 0, Y: 0}
	curveEndPoint   = Point{X: 1, Y: 1}

	defaultControlPoint1 = Point{X: 0.33, Y: 0}
	defaultControlPoint2 = Point{X: 0.67, Y: 1}
)

// TimingFunction is a cubic bezier easing curve active over
// [StartTimeOffset, 1-EndTimeOffset] of a unit-length animation.
type TimingFunction struct {
	StartTimeOffset float64 `json:"startTimeOffset"`
	EndTimeOffset   float64 `json:"endTimeOffset"`
	ControlPoint1   Point   `json:"controlPoint1"`
	ControlPoint2   Point   `json:"controlPoint2"`
}

// NewTimingFunction returns the zero-offset curve with the default control points.
func NewTimingFunction() TimingFunction {
	return TimingFunction{
		ControlPoint1: defaultControlPoint1,
		ControlPoint2: defaultControlPoint2,
	}
}

// Duration is the length of the active window. It is not clamped and goes
// negative when the offsets overlap.
func (tf TimingFunction) Duration() float64 {
	return 1 - tf.EndTimeOffset - tf.StartTimeOffset
}

// StartPoint is always the origin of the unit square.
func (tf TimingFunction) StartPoint() Point {
	return curveStartPoint
}

// EndPoint is always the far corner of the unit square.
func (tf TimingFunction) EndPoint() Point {
	return curveEndPoint
}

// Update copies every field of other into tf.
func (tf *TimingFunction) Update(other TimingFunction) {
	tf.StartTimeOffset = other.StartTimeOffset
	tf.EndTimeOffset = other.EndTimeOffset
	tf.ControlPoint1 = other.ControlPoint1
	tf.ControlPoint2 = other.ControlPoint2
}

func (tf *TimingFunction) RestoreDefaults() {
	tf.Update(NewTimingFunction())
}
