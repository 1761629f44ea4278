package pet

import "time"

const (
	MinStat      = 0
	MaxStat      = 100
	InitialTrait = 50

	ExperiencePerLevel = 100

	HungerDecayPerHour    = 2.0
	EnergyDecayPerHour    = 3.0
	HappinessDecayPerHour = 1.5

	DecayStaleAfter = 24 * time.Hour

	LowHungerThreshold    = 30
	LowEnergyThreshold    = 20
	LowHappinessThreshold = 30

	ExcitedHappinessThreshold = 80
	HappyHappinessThreshold   = 50

	MajesticTraitSum = 240
	AdvancedTraitSum = 180

	DefaultMeditateMinutes = 10
	MinMeditateMinutes     = 1
	MaxMeditateMinutes     = 60
)

const (
	EvolutionMajestic = "majestic"
	EvolutionAdvanced = "advanced"
	EvolutionBasic    = "basic"
)

var Colors = []string{"crimson", "azure", "emerald", "golden", "violet", "silver", "obsidian", "ivory"}

var Patterns = []string{"solid", "striped", "spotted", "gradient", "starry", "flame"}
