package pet

import (
	"fmt"
	"math"
	"time"
)

type Decay struct {
	HungerDelta    int `json:"hungerDelta"`
	EnergyDelta    int `json:"energyDelta"`
	HappinessDelta int `json:"happinessDelta"`
}

func (d Decay) IsZero() bool {
	return d.HungerDelta == 0 && d.EnergyDelta == 0 && d.HappinessDelta == 0
}

func ComputeDecay(p Pet, now time.Time) Decay {
	hoursSinceFed := hoursSince(p.LastFed, now)
	hoursSincePlayed := hoursSince(p.LastPlayed, now)

	hunger := p.Hunger - int(math.Floor(hoursSinceFed*HungerDecayPerHour))
	if hunger < MinStat {
		hunger = MinStat
	}
	energy := maxInt(MinStat, MaxStat-int(math.Floor(hoursSincePlayed*EnergyDecayPerHour)))
	happiness := maxInt(MinStat, MaxStat-int(math.Floor(math.Max(hoursSinceFed, hoursSincePlayed)*HappinessDecayPerHour)))

	return Decay{
		HungerDelta:    hunger - p.Hunger,
		EnergyDelta:    energy - p.Energy,
		HappinessDelta: happiness - p.Happiness,
	}
}

// ApplyDecay is not idempotent for hunger: applying it twice against the same
// LastFed subtracts the hunger loss twice.
func ApplyDecay(p Pet, now time.Time) Pet {
	d := ComputeDecay(p, now)
	p.Hunger = Clamp(p.Hunger + d.HungerDelta)
	p.Energy = Clamp(p.Energy + d.EnergyDelta)
	p.Happiness = Clamp(p.Happiness + d.HappinessDelta)
	p.Reclassify()
	return p
}

func NeedsDecay(p Pet, now time.Time) bool {
	cutoff := now.Add(-DecayStaleAfter)
	return p.LastFed.Before(cutoff) || p.LastPlayed.Before(cutoff)
}

func NeedsAttention(p Pet) bool {
	return p.Hunger < LowHungerThreshold || p.Energy < LowEnergyThreshold || p.Happiness < LowHappinessThreshold
}

func DecayEvent(before, after Pet, now time.Time) GameEvent {
	return GameEvent{
		PetID:           after.ID,
		Type:            EventDecay,
		Description:     fmt.Sprintf("%s needs attention", after.Name),
		EnergyChange:    after.Energy - before.Energy,
		HungerChange:    after.Hunger - before.Hunger,
		HappinessChange: after.Happiness - before.Happiness,
		OccurredAt:      now,
	}
}

func hoursSince(t, now time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	h := now.Sub(t).Hours()
	if h < 0 {
		return 0
	}
	return h
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
