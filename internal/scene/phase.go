// Package scene turns a normalized time value into a fully described frame:
// the active phase, the view, and an ordered list of drawable primitives.
package scene

import (
	"fmt"
	gomath "math"
)

// Phase is one stage of the animation.
type Phase int

// Phases in playback order.
const (
	PhaseIdentify Phase = iota
	PhaseScan
	PhasePointCloud
	PhaseFinal

	phaseCount = int(PhaseFinal) + 1
)

func (p Phase) String() string {
	switch p {
	case PhaseIdentify:
		return "identify"
	case PhaseScan:
		return "scan"
	case PhasePointCloud:
		return "point_cloud"
	case PhaseFinal:
		return "final"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Weights are the relative durations of the phases. They are normalized, so
// only their ratios matter.
type Weights struct {
	Identify   float64 `yaml:"identify"`
	Scan       float64 `yaml:"scan"`
	PointCloud float64 `yaml:"point_cloud"`
	Final      float64 `yaml:"final"`
}

// DefaultWeights splits the timeline 60/20/20. The identify share only counts
// when that phase is switched on.
func DefaultWeights() Weights {
	return Weights{Identify: 0.25, Scan: 0.6, PointCloud: 0.2, Final: 0.2}
}

// Stages selects the optional phases. The final phase always runs.
type Stages struct {
	Identify   bool
	Scan       bool
	PointCloud bool
}


// Interval is the time span [Start, End) a phase occupies.
type Interval struct {
	Phase      Phase
	Start, End float64
}

// Width returns End - Start.
func (i Interval) Width() float64 {
	return i.End - i.Start
}

// Local maps global time t into the interval's local time in [0, 1]. A
// zero-width interval always yields 0.
func (i Interval) Local(t float64) float64 {
	w := i.Width()
	if w <= 0 {
		return 0
	}
	lt := (t - i.Start) / w
	if lt < 0 {
		return 0
	}
	if lt > 1 {
		return 1
	}
	return lt
}

// Schedule assigns each phase its interval of the [0, 1) timeline. A disabled
// phase has zero width and is never active. The final phase is always enabled.
type Schedule struct {
	intervals [phaseCount]Interval
}

// NewSchedule builds a schedule from weights and the enabled stages. Weights
// that are negative, NaN or infinite count as zero.
func NewSchedule(w Weights, st Stages) Schedule {
	var ws [phaseCount]float64
	ws[PhaseFinal] = share(w.Final)
	if st.Identify {
		ws[PhaseIdentify] = share(w.Identify)
	}
	if st.Scan {
		ws[PhaseScan] = share(w.Scan)
	}
	if st.PointCloud {
		ws[PhasePointCloud] = share(w.PointCloud)
	}

	total := 0.0
	for _, v := range ws {
		total += v
	}
	if total <= 0 {
		// Nothing left to budget; the final phase takes the whole run.
		ws = [phaseCount]float64{PhaseFinal: 1}
		total = 1
	}

	var s Schedule
	start := 0.0
	for i := range ws {
		end := start + ws[i]/total
		if Phase(i) == PhaseFinal {
			end = 1
		}
		s.intervals[i] = Interval{Phase: Phase(i), Start: start, End: end}
		start = end
	}
	return s
}

func share(v float64) float64 {
	if !(v > 0) || gomath.IsInf(v, 1) {
		return 0
	}
	return v
}

// Intervals returns every phase's interval in playback order, including
// zero-width ones.
func (s Schedule) Intervals() []Interval {
	return s.intervals[:]
}

// Interval returns the interval of phase p.
func (s Schedule) Interval(p Phase) Interval {
	return s.intervals[p]
}

// Enabled reports whether phase p has a non-zero share of the timeline.
func (s Schedule) Enabled(p Phase) bool {
	return s.intervals[p].Width() > 0
}

// First returns the first enabled phase.
func (s Schedule) First() Phase {
	for _, iv := range s.intervals {
		if iv.Width() > 0 {
			return iv.Phase
		}
	}
	return PhaseFinal
}

// At returns the phase active at global time t and the local time within it.
func (s Schedule) At(t float64) (Phase, float64) {
	for _, iv := range s.intervals {
		if iv.Width() <= 0 {
			continue
		}
		if t < iv.End {
			return iv.Phase, iv.Local(t)
		}
	}
	last := s.intervals[PhaseFinal]
	return last.Phase, last.Local(t)
}
