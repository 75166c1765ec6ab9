package seqmodel

// Scaler is a min-max scaler mapping daily amounts into [0,1]. The
// fitted range must be persisted alongside the model: inference on an
// unscaled or differently scaled series is meaningless.
type Scaler struct {
	Min float64
	Max float64
}

// FitScaler fits a Scaler over a series.
func FitScaler(values []float64) *Scaler {
	s := &Scaler{}
	if len(values) == 0 {
		return s
	}
	s.Min, s.Max = values[0], values[0]
	for _, v := range values[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

// Transform scales one value into [0,1]. A degenerate fitted range
// maps everything to 0.
func (s *Scaler) Transform(v float64) float64 {
	if s.Max == s.Min {
		return 0
	}
	return (v - s.Min) / (s.Max - s.Min)
}

// Inverse maps a scaled value back to currency units.
func (s *Scaler) Inverse(v float64) float64 {
	return v*(s.Max-s.Min) + s.Min
}

// TransformAll scales a whole series.
func (s *Scaler) TransformAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = s.Transform(v)
	}
	return out
}
