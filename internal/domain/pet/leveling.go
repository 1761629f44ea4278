package pet

func RequiredExperience(level int) int {
	return level * ExperiencePerLevel
}

// AddExperience rolls over at most one level per call. A gain of two or more
// thresholds leaves the surplus above the new level's threshold.
func AddExperience(p Pet, amount int) (Pet, bool, int) {
	p.Experience += amount
	required := RequiredExperience(p.Level)
	if p.Experience >= required {
		p.Level++
		p.Experience -= required
		return p, true, p.Level
	}
	return p, false, 0
}
