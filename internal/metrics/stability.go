package metrics

import (
	"github.com/san-kum/gravsim/internal/nbody"
)

// Bounded is the fraction of observations in which every body stayed within
// threshold of the centre of mass.
type Bounded struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewBounded(threshold float64) *Bounded {
	return &Bounded{
		name:      "bounded",
		threshold: threshold,
	}
}

func (s *Bounded) Name() string {
	return s.name
}

func (s *Bounded) Observe(w *nbody.World, t float64) {
	s.samples++
	com := w.CenterOfMass()
	for _, p := range w.Positions() {
		if p.Sub(com).Len() > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Bounded) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Bounded) Reset() {
	s.violations = 0
	s.samples = 0
}

// Contacts is the largest number of touching pairs seen in one observation.
type Contacts struct {
	name string
	max  int
}

func NewContacts() *Contacts {
	return &Contacts{name: "max_contacts"}
}

func (c *Contacts) Name() string { return c.name }

func (c *Contacts) Observe(w *nbody.World, t float64) {
	if n := w.Contacts(); n > c.max {
		c.max = n
	}
}

func (c *Contacts) Value() float64 { return float64(c.max) }

func (c *Contacts) Reset() { c.max = 0 }
