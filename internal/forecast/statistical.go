package forecast

import "math"

// Empirically tuned constants carried over from the original tuning of
// this forecaster. Behavioral parity matters more than re-deriving
// "better" values.
const (
	// Tier boundaries on days of history.
	shortHistoryDays = 7
	midHistoryDays   = 14
	longWindowDays   = 30

	// 7-13 day tier blend.
	midRecentWeight  = 0.7
	midOverallWeight = 0.3

	// >= 14 day tier blend.
	longWeight7       = 0.4
	longWeight14      = 0.3
	longWeight30      = 0.2
	longWeightOverall = 0.1

	// Trend handling for the long tier.
	trendDamping = 0.1
	trendRamp    = 0.02

	// Bounded per-day jitter, as a fraction of the day's prediction.
	jitterFraction = 0.10

	// Confidence scores.
	veryShortConfidence     = 40
	shortConfidence         = 55
	sequenceModelConfidence = 85
	fallbackConfidence      = 30

	// fallbackDaily is the placeholder prediction when no history at
	// all reaches the statistical path.
	fallbackDaily = 100.0
)

// weekdayMultipliers shapes the base prediction across the horizon
// (weekends spend more). Indexed by horizon-day offset modulo 7.
var weekdayMultipliers = [7]float64{1.0, 0.9, 0.9, 0.9, 0.9, 1.1, 1.2}

// detail labels for the statistical tiers.
const (
	detailSimpleAverage  = "simple_average"
	detailRecentWeighted = "recent_weighted"
	detailWeightedTrend  = "weighted_trend"
)

// statistical computes the tiered statistical forecast. The tier is
// selected by history length; every day then gets the weekday
// multiplier and bounded jitter so the forecast line is not flat.
func (e *Engine) statistical(amounts []float64, days int) Result {
	if len(amounts) == 0 {
		return Result{
			Predictions:     flat(fallbackDaily, days),
			DailyAverage:    fallbackDaily,
			TotalPredicted:  fallbackDaily * float64(days),
			Confidence:      fallbackConfidence,
			ConfidenceLevel: confidenceLevel(fallbackConfidence),
			Method:          MethodFallback,
		}
	}

	overall := mean(amounts)

	var base, confidence, trend float64
	var detail string
	hasTrend := false

	switch {
	case len(amounts) < shortHistoryDays:
		base = overall
		confidence = veryShortConfidence
		detail = detailSimpleAverage

	case len(amounts) < midHistoryDays:
		recent := meanTail(amounts, shortHistoryDays)
		base = recent*midRecentWeight + overall*midOverallWeight
		confidence = shortConfidence
		detail = detailRecentWeighted

	default:
		recent7 := meanTail(amounts, shortHistoryDays)
		recent14 := meanTail(amounts, midHistoryDays)
		recent30 := recent14
		if len(amounts) >= longWindowDays {
			recent30 = meanTail(amounts, longWindowDays)
		}

		trend = (recent7 - recent14) * trendDamping
		hasTrend = true
		base = recent7*longWeight7 + recent14*longWeight14 + recent30*longWeight30 + overall*longWeightOverall
		confidence = volatilityConfidence(amounts, overall)
		detail = detailWeightedTrend
	}

	preds := make([]float64, days)
	for day := 0; day < days; day++ {
		p := base * weekdayMultipliers[day%7]
		if hasTrend {
			p += trend * float64(day+1) * trendRamp
		}
		jitter := (e.rng.Float64()*2 - 1) * jitterFraction * p
		p += jitter
		if p < 0 {
			p = 0
		}
		preds[day] = p
	}

	return Result{
		Predictions:     preds,
		DailyAverage:    mean(preds),
		TotalPredicted:  sum(preds),
		Confidence:      confidence,
		ConfidenceLevel: confidenceLevel(confidence),
		Method:          MethodStatistical,
		MethodDetail:    detail,
	}
}

// volatilityConfidence maps the coefficient of variation of the full
// history onto a confidence score: steadier spending forecasts better.
func volatilityConfidence(amounts []float64, overall float64) float64 {
	cov := 1.0
	if overall > 0 {
		cov = stddev(amounts) / overall
	}
	switch {
	case cov < 0.3:
		return 80
	case cov < 0.5:
		return 70
	case cov < 0.8:
		return 60
	default:
		return 50
	}
}

func confidenceLevel(confidence float64) string {
	switch {
	case confidence > 75:
		return "high"
	case confidence > 60:
		return "medium"
	default:
		return "low"
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

// meanTail averages the last n values (or all of them when shorter).
func meanTail(values []float64, n int) float64 {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return mean(values)
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// stddev is the population standard deviation.
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

func flat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
