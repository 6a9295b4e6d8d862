package pathgraph

// DefaultAccuracy is the default distance within which points and curves are considered coincident.
const DefaultAccuracy = 0.01

// FillRule determines from the crossing count of a path whether a point is inside it.
type FillRule int

// see FillRule
const (
	NonZero FillRule = iota
	EvenOdd
)

// Inside returns true if count is inside according to the fill rule.
func (fillRule FillRule) Inside(count int) bool {
	if fillRule == EvenOdd {
		return count%2 != 0
	}
	return count != 0
}

func (fillRule FillRule) String() string {
	if fillRule == EvenOdd {
		return "EvenOdd"
	}
	return "NonZero"
}

type options struct {
	accuracy float64
	fillRule FillRule
	repair   bool
	validate bool
}

func defaultOptions() options {
	return options{
		accuracy: DefaultAccuracy,
		fillRule: NonZero,
		validate: true,
	}
}

// Option configures a boolean operation.
type Option func(*options)

// WithAccuracy sets the distance within which points and curves are considered coincident. Non-positive values are ignored.
func WithAccuracy(accuracy float64) Option {
	return func(o *options) {
		if 0.0 < accuracy {
			o.accuracy = accuracy
		}
	}
}

// WithFillRule sets the fill rule applied to each input path.
func WithFillRule(fillRule FillRule) Option {
	return func(o *options) {
		o.fillRule = fillRule
	}
}

// WithRepair accepts the best-effort result when the graph turns out inconsistent, the error is logged instead of returned.
func WithRepair() Option {
	return func(o *options) {
		o.repair = true
	}
}

// WithoutValidation skips the continuity check of the graph before classification.
func WithoutValidation() Option {
	return func(o *options) {
		o.validate = false
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
