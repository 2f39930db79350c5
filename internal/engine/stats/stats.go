// Package stats derives combat stats from attributes, level and class.
// Everything here is pure: no I/O, no clocks, no randomness.
package stats

import (
	"math"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	"github.com/KirkDiggler/realm-api/internal/tuning"
)

// Reasons reported by Allocate
const (
	ReasonNoChange           = "NO_CHANGE"
	ReasonNegativeDelta      = "NEGATIVE_DELTA"
	ReasonInsufficientPoints = "INSUFFICIENT_POINTS"
)

// Engine applies one stat curve
type Engine struct {
	curve tuning.StatCurve
}

// NewEngine creates an engine for curve
func NewEngine(curve tuning.StatCurve) *Engine {
	return &Engine{curve: curve}
}

// Derive computes the full stat block. Health and Mana come back equal to
// their maxima; callers holding a live character pass the result through
// Refresh instead of storing it directly.
func (e *Engine) Derive(attrs entities.Attributes, level int, class entities.CharacterClass) entities.Stats {
	c := e.curve
	mod := c.Modifier(class)

	str := float64(attrs.Strength)
	mag := float64(attrs.Magic)
	dex := float64(attrs.Dexterity)
	agi := float64(attrs.Agility)
	luck := float64(attrs.Luck)
	lvl := float64(level)

	maxHealth := floorInt((c.HealthBase + str*c.HealthPerStrength + lvl*c.HealthPerLevel) * mod.Health)
	maxMana := floorInt(c.ManaBase + mag*c.ManaPerMagic + lvl*c.ManaPerLevel)

	return entities.Stats{
		MaxHealth: maxHealth,
		MaxMana:   maxMana,
		Health:    maxHealth,
		Mana:      maxMana,
		Attack: floorInt((str*c.AttackPerStrength + mag*c.AttackPerMagic +
			dex*c.AttackPerDexterity + lvl*c.AttackPerLevel) * mod.Attack),
		Defense:        floorInt((str*c.DefensePerStrength + lvl*c.DefensePerLevel) * mod.Defense),
		Accuracy:       math.Min(c.AccuracyCap, c.AccuracyBase+dex*c.AccuracyPerDexterity),
		DodgeChance:    math.Min(c.DodgeCap, agi*c.DodgePerAgility),
		CriticalChance: math.Min(c.CritCap, luck*c.CritPerLuck),
		CriticalResist: math.Min(c.CritResistCap, luck*c.CritResistPerLuck),
	}
}

// Refresh merges freshly derived stats into a character's current ones.
// A maximum that grew tops the current value up to it; otherwise the
// current value is kept and clamped to the new maximum.
func Refresh(current, derived entities.Stats) entities.Stats {
	out := derived
	out.Health = refreshPool(current.Health, current.MaxHealth, derived.MaxHealth)
	out.Mana = refreshPool(current.Mana, current.MaxMana, derived.MaxMana)
	return out
}

func refreshPool(cur, oldMax, newMax int) int {
	if newMax > oldMax {
		return newMax
	}
	if cur > newMax {
		return newMax
	}
	if cur < 0 {
		return 0
	}
	return cur
}

// Changed reports whether any attribute differs
func Changed(before, after entities.Attributes) bool {
	return before != after
}

// Allocate spends unallocated points on attributes. It returns the new
// attribute block and the points left over.
func Allocate(attrs entities.Attributes, available int, deltas entities.Attributes) (entities.Attributes, int, error) {
	if deltas.HasNegative() {
		return attrs, available, errors.InvalidArgument("attribute deltas must be non-negative").
			WithReason(ReasonNegativeDelta)
	}

	// spent never exceeds available, so the running sum cannot wrap
	spent := 0
	for _, d := range deltas.Values() {
		if d > available-spent {
			return attrs, available, errors.FailedPreconditionf("cannot spend more than %d points", available).
				WithReason(ReasonInsufficientPoints).
				WithMeta("available", available)
		}
		spent += d
	}

	next := attrs.Add(deltas)
	if !Changed(attrs, next) {
		return attrs, available, errors.FailedPrecondition("no attribute changed").
			WithReason(ReasonNoChange)
	}

	return next, available - spent, nil
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}
