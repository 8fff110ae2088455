package effects

import (
	"math/rand"

	"github.com/keagan/montagecannon/internal/channel"
)

// Assignment is the per-clip effect selection. Empty string = no effect
// in that slot.
type Assignment struct {
	KenBurns       string
	TransientStart string
	TransientEnd   string
}

// Selector assigns effect instances across one channel's clip sequence.
// It carries the anti-repetition state for Ken Burns picks, so one
// instance is constructed per channel run and clips must be consumed in
// index order.
type Selector struct {
	cfg    *channel.EffectConfig
	rng    *rand.Rand
	recent []string // last 2 Ken Burns picks
}

// NewSelector creates a selector for one channel run.
func NewSelector(cfg *channel.EffectConfig, rng *rand.Rand) *Selector {
	return &Selector{cfg: cfg, rng: rng}
}

// Pick returns the effect assignment for clip index i of total clips.
func (s *Selector) Pick(i, total int) Assignment {
	var a Assignment

	if len(s.cfg.KenBurns) > 0 {
		if s.cfg.KenBurnsRandomize {
			a.KenBurns = s.pickKenBurns()
		} else {
			a.KenBurns = s.cfg.KenBurns[i%len(s.cfg.KenBurns)]
		}
	}

	pool := s.transientPool()
	if len(pool) > 0 && s.shouldApplyTransient(i) {
		switch s.cfg.EffectTiming {
		case channel.TimingEnd:
			a.TransientEnd = pool[s.rng.Intn(len(pool))]
		case channel.TimingRandom:
			if s.rng.Intn(2) == 0 {
				a.TransientStart = pool[s.rng.Intn(len(pool))]
			} else {
				a.TransientEnd = pool[s.rng.Intn(len(pool))]
			}
		default:
			// "start", and "middle" which applies at the start slot by
			// long-standing convention (single application point).
			a.TransientStart = pool[s.rng.Intn(len(pool))]
		}
	}

	return a
}

// pickKenBurns draws uniformly, excluding the previous two picks. When
// the exclusion would empty the candidate set the exclusion is dropped
// for that pick.
func (s *Selector) pickKenBurns() string {
	candidates := make([]string, 0, len(s.cfg.KenBurns))
	for _, id := range s.cfg.KenBurns {
		if !contains(s.recent, id) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		candidates = s.cfg.KenBurns
	}

	pick := candidates[s.rng.Intn(len(candidates))]
	s.recent = append(s.recent, pick)
	if len(s.recent) > 2 {
		s.recent = s.recent[len(s.recent)-2:]
	}
	return pick
}

func (s *Selector) transientPool() []string {
	pool := make([]string, 0, len(s.cfg.ScaleEffects)+len(s.cfg.MotionEffects))
	pool = append(pool, s.cfg.ScaleEffects...)
	pool = append(pool, s.cfg.MotionEffects...)
	return pool
}

func (s *Selector) shouldApplyTransient(i int) bool {
	switch s.cfg.EffectFrequency {
	case channel.FrequencyAll:
		return true
	case channel.FrequencyPercent:
		return s.rng.Intn(100)+1 <= s.cfg.EffectPercent
	case channel.FrequencyEvery:
		return (i+1)%s.cfg.EffectEvery == 0
	case channel.FrequencyRandom:
		return s.rng.Intn(2) == 0
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
