// Package seqmodel implements the sequence model behind the
// forecasting engine: a small regressor over a fixed 7-day window of
// scaled daily spending, trained offline and persisted together with
// its input scaler as a pair of artifacts. Either artifact missing
// means the model is unavailable and the engine stays on its
// statistical path.
package seqmodel

import (
	"fmt"
	"math"
	"math/rand"
)

// SequenceLength is the input window: seven prior days predict the
// next one. Training and inference must agree on it.
const SequenceLength = 7

// Model is a single-hidden-layer regressor over a scaled daily window.
// Fields are exported for gob encoding.
type Model struct {
	InputSize  int
	HiddenSize int
	W1         [][]float64 // hidden x input
	B1         []float64
	W2         []float64
	B2         float64
}

// newModel allocates a model with small random weights.
func newModel(inputSize, hiddenSize int, rng *rand.Rand) *Model {
	m := &Model{
		InputSize:  inputSize,
		HiddenSize: hiddenSize,
		W1:         make([][]float64, hiddenSize),
		B1:         make([]float64, hiddenSize),
		W2:         make([]float64, hiddenSize),
	}
	scale := 1.0 / math.Sqrt(float64(inputSize))
	for j := range m.W1 {
		m.W1[j] = make([]float64, inputSize)
		for i := range m.W1[j] {
			m.W1[j][i] = (rng.Float64()*2 - 1) * scale
		}
		m.W2[j] = (rng.Float64()*2 - 1) * scale
	}
	return m
}

// Predict runs one forward pass over a scaled window and returns the
// scaled next-day value.
func (m *Model) Predict(window []float64) (float64, error) {
	if len(window) != m.InputSize {
		return 0, fmt.Errorf("window length %d, model expects %d", len(window), m.InputSize)
	}
	_, y := m.forward(window)
	return y, nil
}

// forward returns the hidden activations and the output.
func (m *Model) forward(x []float64) ([]float64, float64) {
	h := make([]float64, m.HiddenSize)
	for j := 0; j < m.HiddenSize; j++ {
		sum := m.B1[j]
		for i, xi := range x {
			sum += m.W1[j][i] * xi
		}
		h[j] = math.Tanh(sum)
	}
	y := m.B2
	for j, hj := range h {
		y += m.W2[j] * hj
	}
	return h, y
}

// step performs one gradient-descent update on a single (window,
// target) pair and returns the squared error before the update.
func (m *Model) step(x []float64, target, lr float64) float64 {
	h, y := m.forward(x)
	err := y - target

	for j := 0; j < m.HiddenSize; j++ {
		dh := err * m.W2[j] * (1 - h[j]*h[j])
		m.W2[j] -= lr * err * h[j]
		for i, xi := range x {
			m.W1[j][i] -= lr * dh * xi
		}
		m.B1[j] -= lr * dh
	}
	m.B2 -= lr * err

	return err * err
}

// loss returns the mean squared error over a window set.
func (m *Model) loss(windows [][]float64, targets []float64) float64 {
	if len(windows) == 0 {
		return 0
	}
	var sum float64
	for i, w := range windows {
		_, y := m.forward(w)
		d := y - targets[i]
		sum += d * d
	}
	return sum / float64(len(windows))
}

// clone deep-copies the model (used to retain best-epoch weights).
func (m *Model) clone() *Model {
	c := &Model{
		InputSize:  m.InputSize,
		HiddenSize: m.HiddenSize,
		W1:         make([][]float64, m.HiddenSize),
		B1:         append([]float64(nil), m.B1...),
		W2:         append([]float64(nil), m.W2...),
		B2:         m.B2,
	}
	for j := range m.W1 {
		c.W1[j] = append([]float64(nil), m.W1[j]...)
	}
	return c
}
