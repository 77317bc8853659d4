package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and metadata of one checking phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the phases of checking one document. A nil *Timer is valid
// and records nothing.
type Timer struct {
	phases []Phase
	now    func() time.Time
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4), now: time.Now} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index and returns how long it took.
func (t *Timer) End(idx int, note string) time.Duration {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return 0
	}
	p := &t.phases[idx]
	p.Dur = t.now().Sub(p.Start)
	p.Note = note
	return p.Dur
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	return t.Report().Summary()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(t.phases)),
	}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Merge adds the phases of other to r, summing phases with the same name.
// It is used to total the reports of many files.
func (r *Report) Merge(other Report) {
	for _, p := range other.Phases {
		found := false
		for i := range r.Phases {
			if r.Phases[i].Name == p.Name {
				r.Phases[i].DurationMS += p.DurationMS
				found = true
				break
			}
		}
		if !found {
			r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: p.DurationMS})
		}
	}
	r.TotalMS += other.TotalMS
}

// Summary renders the report one phase per line.
func (r Report) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
