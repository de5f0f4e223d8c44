// Package monitor samples system load in the background for the desk label.
package monitor

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Stats is one CPU/memory sample, in percent rounded to one decimal.
type Stats struct {
	CPU float64
	Mem float64
}

// Label formats the stats for display.
func (s Stats) Label() string {
	return fmt.Sprintf("CPU %.1f%%  MEM %.1f%%", s.CPU, s.Mem)
}

// Sampler publishes the latest Stats. Readers never block the sampling
// goroutine and never see a half-written sample.
type Sampler struct {
	latest atomic.Pointer[Stats]
	sample func() (Stats, error)
}

// NewSampler returns a sampler backed by gopsutil.
func NewSampler() *Sampler {
	s := &Sampler{sample: sampleSystem}
	s.latest.Store(&Stats{})
	return s
}

// Start samples every interval until ctx is done.
func (s *Sampler) Start(ctx context.Context, interval time.Duration) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			s.update()
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

// Stats returns the most recent sample.
func (s *Sampler) Stats() Stats {
	return *s.latest.Load()
}

func (s *Sampler) update() {
	st, err := s.sample()
	if err != nil {
		return
	}
	s.latest.Store(&st)
}

func sampleSystem() (Stats, error) {
	var st Stats
	v, err := mem.VirtualMemory()
	if err != nil {
		return st, err
	}
	st.Mem = round1(v.UsedPercent)

	// interval 0 compares against the previous call instead of blocking
	c, err := cpu.Percent(0, false)
	if err != nil {
		return st, err
	}
	if len(c) > 0 {
		st.CPU = round1(c[0])
	}
	return st, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
