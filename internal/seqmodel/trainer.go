package seqmodel

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	// MinTrainingDays is the shortest daily series worth fitting.
	MinTrainingDays = 30

	// MinTrainingWindows is the minimum number of (window, target)
	// pairs required after windowing.
	MinTrainingWindows = 20

	// trainSplit is the temporal train/validation split ratio.
	trainSplit = 0.8
)

// ErrInsufficientData is returned when the series is too short to fit
// a model.
var ErrInsufficientData = errors.New("not enough daily data to train")

// TrainConfig holds training hyperparameters. Zero values take
// defaults.
type TrainConfig struct {
	HiddenSize   int
	Epochs       int
	LearningRate float64
	Patience     int   // early-stopping patience on validation loss
	Seed         int64 // weight-init seed; 0 means a fixed default
}

func (c TrainConfig) withDefaults() TrainConfig {
	if c.HiddenSize == 0 {
		c.HiddenSize = 16
	}
	if c.Epochs == 0 {
		c.Epochs = 200
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.01
	}
	if c.Patience == 0 {
		c.Patience = 10
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	return c
}

// TrainReport summarizes a training run.
type TrainReport struct {
	Days         int
	Windows      int
	EpochsRun    int
	TrainLoss    float64
	ValLoss      float64
	NextDayValue float64 // one-step sanity prediction, currency units
}

// Train fits a sequence model on a daily spending series. The series
// must span at least MinTrainingDays days and produce at least
// MinTrainingWindows windows. The split is temporal, oldest first; no
// shuffling, so validation always post-dates training.
func Train(daily []float64, cfg TrainConfig) (*Model, *Scaler, TrainReport, error) {
	cfg = cfg.withDefaults()

	if len(daily) < MinTrainingDays {
		return nil, nil, TrainReport{}, fmt.Errorf("%w: need %d days, have %d", ErrInsufficientData, MinTrainingDays, len(daily))
	}

	scaler := FitScaler(daily)
	scaled := scaler.TransformAll(daily)

	windows, targets := makeWindows(scaled)
	if len(windows) < MinTrainingWindows {
		return nil, nil, TrainReport{}, fmt.Errorf("%w: need %d windows, have %d", ErrInsufficientData, MinTrainingWindows, len(windows))
	}

	splitIdx := int(float64(len(windows)) * trainSplit)
	trainW, valW := windows[:splitIdx], windows[splitIdx:]
	trainT, valT := targets[:splitIdx], targets[splitIdx:]

	rng := rand.New(rand.NewSource(cfg.Seed))
	m := newModel(SequenceLength, cfg.HiddenSize, rng)

	best := m.clone()
	bestVal := m.loss(valW, valT)
	sinceImproved := 0
	epochsRun := 0

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for i, w := range trainW {
			m.step(w, trainT[i], cfg.LearningRate)
		}
		epochsRun++

		val := m.loss(valW, valT)
		if val < bestVal {
			bestVal = val
			best = m.clone()
			sinceImproved = 0
		} else {
			sinceImproved++
			if sinceImproved >= cfg.Patience {
				break
			}
		}
	}

	report := TrainReport{
		Days:      len(daily),
		Windows:   len(windows),
		EpochsRun: epochsRun,
		TrainLoss: best.loss(trainW, trainT),
		ValLoss:   bestVal,
	}

	next, err := best.Predict(scaled[len(scaled)-SequenceLength:])
	if err == nil {
		report.NextDayValue = scaler.Inverse(next)
	}

	return best, scaler, report, nil
}

// makeWindows slices a scaled series into (window, next-day) pairs.
func makeWindows(scaled []float64) ([][]float64, []float64) {
	n := len(scaled) - SequenceLength
	windows := make([][]float64, 0, n)
	targets := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		windows = append(windows, scaled[i:i+SequenceLength])
		targets = append(targets, scaled[i+SequenceLength])
	}
	return windows, targets
}
