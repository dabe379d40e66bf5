package srs

// Params defines all configurable parameters for the scheduling algorithm.
// A Params value is immutable for the lifetime of the Service that holds it.
type Params struct {
	// Core limits. The canonical ease bounds are [1.3, 3.0]; stored values
	// outside this range are clamped on the way in, never rejected.
	MinEaseFactor float64
	MaxEaseFactor float64

	// DefaultEaseFactor is the ease assigned at the midpoint confidence.
	DefaultEaseFactor float64

	// ConfidenceEaseSpan spreads the initial ease around the default:
	// ease = default + (confidence - 0.5) * span.
	ConfidenceEaseSpan float64

	// Score handling. Scores below FailThreshold count as failed recall.
	MaxScore      int
	FailThreshold int

	// FailEasePenalty is subtracted from the ease factor on a failed review.
	FailEasePenalty float64

	// Interval ladder for the first two successes.
	FirstSuccessIntervalDays  int
	SecondSuccessIntervalDays int

	// MatureIntervalDays is the interval at which a card counts as mature.
	MatureIntervalDays int

	// Initial interval step function over the confidence estimate.
	// Must stay monotonic in confidence.
	MediumConfidence           float64
	HighConfidence             float64
	LowConfidenceIntervalDays  int
	MidConfidenceIntervalDays  int
	HighConfidenceIntervalDays int

	// Due-priority weights: overdue days dominate, low ease adds urgency,
	// cards with few reviews get a small boost.
	OverdueWeight    float64
	DifficultyWeight float64
	NoveltyWeight    float64
	NoveltyReviewCap int

	// OverdueGraceDays is the default urgency window for IsOverdue when the
	// caller does not supply one.
	OverdueGraceDays int
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	MinEaseFactor      float64
	MaxEaseFactor      float64
	DefaultEaseFactor  float64
	ConfidenceEaseSpan float64

	FailThreshold   int
	FailEasePenalty float64

	FirstSuccessIntervalDays  int
	SecondSuccessIntervalDays int
	MatureIntervalDays        int

	OverdueWeight    float64
	DifficultyWeight float64
	NoveltyWeight    float64

	OverdueGraceDays int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 3.0,

		DefaultEaseFactor:  2.5,
		ConfidenceEaseSpan: 1.0,

		MaxScore:      5,
		FailThreshold: 3,

		FailEasePenalty: 0.2,

		FirstSuccessIntervalDays:  1,
		SecondSuccessIntervalDays: 6,

		MatureIntervalDays: 21,

		MediumConfidence:           0.5,
		HighConfidence:             0.7,
		LowConfidenceIntervalDays:  1,
		MidConfidenceIntervalDays:  2,
		HighConfidenceIntervalDays: 3,

		OverdueWeight:    2.0,
		DifficultyWeight: 0.5,
		NoveltyWeight:    0.1,
		NoveltyReviewCap: 10,

		OverdueGraceDays: 1,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Only positive config values override the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}
	if config.DefaultEaseFactor > 0 {
		params.DefaultEaseFactor = config.DefaultEaseFactor
	}
	if config.ConfidenceEaseSpan > 0 {
		params.ConfidenceEaseSpan = config.ConfidenceEaseSpan
	}

	if config.FailThreshold > 0 {
		params.FailThreshold = config.FailThreshold
	}
	if config.FailEasePenalty > 0 {
		params.FailEasePenalty = config.FailEasePenalty
	}

	if config.FirstSuccessIntervalDays > 0 {
		params.FirstSuccessIntervalDays = config.FirstSuccessIntervalDays
	}
	if config.SecondSuccessIntervalDays > 0 {
		params.SecondSuccessIntervalDays = config.SecondSuccessIntervalDays
	}
	if config.MatureIntervalDays > 0 {
		params.MatureIntervalDays = config.MatureIntervalDays
	}

	if config.OverdueWeight > 0 {
		params.OverdueWeight = config.OverdueWeight
	}
	if config.DifficultyWeight > 0 {
		params.DifficultyWeight = config.DifficultyWeight
	}
	if config.NoveltyWeight > 0 {
		params.NoveltyWeight = config.NoveltyWeight
	}

	if config.OverdueGraceDays > 0 {
		params.OverdueGraceDays = config.OverdueGraceDays
	}

	return params
}

// initialIntervalDays maps a clamped confidence estimate to the first review
// interval. The step function is a documented policy choice; the only hard
// requirement is monotonicity in confidence.
func (p *Params) initialIntervalDays(confidence float64) int {
	switch {
	case confidence < p.MediumConfidence:
		return p.LowConfidenceIntervalDays
	case confidence < p.HighConfidence:
		return p.MidConfidenceIntervalDays
	default:
		return p.HighConfidenceIntervalDays
	}
}
