// Package forecast produces forward-looking daily spending forecasts
// from transaction history. A trained sequence model is preferred when
// its artifacts are present and the history is long enough; otherwise
// a tiered statistical method runs. The engine degrades, it does not
// error: only genuinely empty input fails.
package forecast

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/budgetwise-dev/budgetwise/internal/model"
	"github.com/budgetwise-dev/budgetwise/internal/seqmodel"
	"github.com/budgetwise-dev/budgetwise/internal/series"
)

// Method identifies which engine path produced a forecast.
type Method string

const (
	MethodSequenceModel Method = "sequence-model"
	MethodStatistical   Method = "statistical"
	MethodFallback      Method = "fallback"
)

// DefaultHorizonDays is the forecast horizon when the caller does not
// specify one.
const DefaultHorizonDays = 30

// Result is a completed forecast, flat and JSON-serializable for any
// consumer.
type Result struct {
	Predictions     []float64 `json:"predictions"`
	DailyAverage    float64   `json:"daily_average"`
	TotalPredicted  float64   `json:"total_predicted"`
	Confidence      float64   `json:"confidence"`
	ConfidenceLevel string    `json:"confidence_level"`
	Method          Method    `json:"method"`
	MethodDetail    string    `json:"method_detail,omitempty"`
}

// Engine runs forecast requests. Safe for concurrent use only when
// callers serialize access to the jitter source; the CLI constructs
// one engine per invocation.
type Engine struct {
	store      *seqmodel.Store
	modelPath  string
	scalerPath string
	rng        *rand.Rand
	log        zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithArtifacts points the engine at a trained model/scaler pair.
// Without this option the engine always uses the statistical method.
func WithArtifacts(modelPath, scalerPath string) Option {
	return func(e *Engine) {
		e.modelPath = modelPath
		e.scalerPath = scalerPath
	}
}

// WithStore substitutes a shared artifact store.
func WithStore(store *seqmodel.Store) Option {
	return func(e *Engine) { e.store = store }
}

// WithRand substitutes the jitter randomness source (tests inject a
// seeded one).
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine creates a forecasting engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		store: seqmodel.NewStore(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Forecast predicts daily spending for the next `days` days from the
// given transaction history. Callers pre-filter to expense
// transactions. days <= 0 means DefaultHorizonDays. The only error is
// series.ErrEmptyInput for an empty history; every other degradation
// is absorbed into Method and Confidence.
func (e *Engine) Forecast(txns []model.Transaction, days int) (Result, error) {
	if days <= 0 {
		days = DefaultHorizonDays
	}

	points, err := series.Build(txns)
	if err != nil {
		return Result{}, err
	}
	amounts := series.Amounts(points)
	e.log.Debug().Int("days_of_history", len(amounts)).Int("horizon", days).Msg("forecast prepared")

	if res, ok := e.trySequenceModel(amounts, days); ok {
		return res, nil
	}

	res := e.statistical(amounts, days)

	// Last-resort substitution: a non-positive average is never
	// returned while history exists.
	if res.DailyAverage <= 0 {
		m := mean(amounts)
		res.Predictions = flat(m, days)
		res.DailyAverage = m
		res.TotalPredicted = m * float64(days)
	}
	return res, nil
}

// trySequenceModel runs autoregressive inference when the artifact
// pair loads and the history covers a full input window. Any failure
// reports false so the caller falls back; it never propagates.
func (e *Engine) trySequenceModel(amounts []float64, days int) (Result, bool) {
	if e.modelPath == "" || e.scalerPath == "" {
		return Result{}, false
	}

	pair, err := e.store.LoadPair(e.modelPath, e.scalerPath)
	if err != nil {
		e.log.Info().Err(err).Msg("sequence model unavailable, using statistical method")
		return Result{}, false
	}

	if len(amounts) < seqmodel.SequenceLength {
		e.log.Info().
			Int("have", len(amounts)).
			Int("need", seqmodel.SequenceLength).
			Msg("history too short for sequence model")
		return Result{}, false
	}

	scaled := pair.Scaler.TransformAll(amounts)
	window := append([]float64(nil), scaled[len(scaled)-seqmodel.SequenceLength:]...)

	preds := make([]float64, 0, days)
	for i := 0; i < days; i++ {
		next, err := pair.Model.Predict(window)
		if err != nil {
			e.log.Warn().Err(err).Msg("sequence model inference failed, falling back")
			return Result{}, false
		}
		preds = append(preds, next)
		// Roll the window: drop the oldest day, feed the prediction back.
		copy(window, window[1:])
		window[len(window)-1] = next
	}

	for i, p := range preds {
		v := pair.Scaler.Inverse(p)
		if v < 0 {
			v = 0
		}
		preds[i] = v
	}

	avg := mean(preds)
	if avg <= 0 {
		e.log.Warn().Msg("sequence model produced non-positive average, falling back")
		return Result{}, false
	}

	return Result{
		Predictions:     preds,
		DailyAverage:    avg,
		TotalPredicted:  sum(preds),
		Confidence:      sequenceModelConfidence,
		ConfidenceLevel: confidenceLevel(sequenceModelConfidence),
		Method:          MethodSequenceModel,
	}, true
}
