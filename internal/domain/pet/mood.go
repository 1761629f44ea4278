package pet

// ClassifyMood derives a mood from the vitals in priority order. It never
// returns MoodCalm; calm is only ever assigned directly.
func ClassifyMood(hunger, energy, happiness int) Mood {
	switch {
	case hunger < LowHungerThreshold:
		return MoodHungry
	case energy < LowEnergyThreshold:
		return MoodTired
	case happiness > ExcitedHappinessThreshold:
		return MoodExcited
	case happiness > HappyHappinessThreshold:
		return MoodHappy
	default:
		return MoodSad
	}
}

func (p *Pet) Reclassify() {
	p.Mood = ClassifyMood(p.Hunger, p.Energy, p.Happiness)
}
