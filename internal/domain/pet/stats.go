package pet

func Clamp(v int) int {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}

func (p *Pet) Normalize() {
	p.Energy = Clamp(p.Energy)
	p.Hunger = Clamp(p.Hunger)
	p.Happiness = Clamp(p.Happiness)
	p.HiddenTraits.Trust = Clamp(p.HiddenTraits.Trust)
	p.HiddenTraits.Empathy = Clamp(p.HiddenTraits.Empathy)
	p.HiddenTraits.Curiosity = Clamp(p.HiddenTraits.Curiosity)
	if p.Level < 1 {
		p.Level = 1
	}
	if p.Experience < 0 {
		p.Experience = 0
	}
}

type Delta struct {
	Energy     int          `json:"energy"`
	Hunger     int          `json:"hunger"`
	Happiness  int          `json:"happiness"`
	Experience int          `json:"experience"`
	Traits     HiddenTraits `json:"hiddenTraits"`
}

// applyBounded adds d to the bounded stats and returns the change that actually
// landed after clamping. Experience is carried through untouched.
func applyBounded(p *Pet, d Delta) Delta {
	before := *p
	p.Energy = Clamp(p.Energy + d.Energy)
	p.Hunger = Clamp(p.Hunger + d.Hunger)
	p.Happiness = Clamp(p.Happiness + d.Happiness)
	p.HiddenTraits.Trust = Clamp(p.HiddenTraits.Trust + d.Traits.Trust)
	p.HiddenTraits.Empathy = Clamp(p.HiddenTraits.Empathy + d.Traits.Empathy)
	p.HiddenTraits.Curiosity = Clamp(p.HiddenTraits.Curiosity + d.Traits.Curiosity)
	return Delta{
		Energy:     p.Energy - before.Energy,
		Hunger:     p.Hunger - before.Hunger,
		Happiness:  p.Happiness - before.Happiness,
		Experience: d.Experience,
		Traits: HiddenTraits{
			Trust:     p.HiddenTraits.Trust - before.HiddenTraits.Trust,
			Empathy:   p.HiddenTraits.Empathy - before.HiddenTraits.Empathy,
			Curiosity: p.HiddenTraits.Curiosity - before.HiddenTraits.Curiosity,
		},
	}
}

func PredictEvolution(t HiddenTraits) string {
	switch sum := t.Sum(); {
	case sum >= MajesticTraitSum:
		return EvolutionMajestic
	case sum >= AdvancedTraitSum:
		return EvolutionAdvanced
	default:
		return EvolutionBasic
	}
}
