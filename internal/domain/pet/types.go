package pet

import "time"

type Species string

const (
	SpeciesDragon  Species = "dragon"
	SpeciesPhoenix Species = "phoenix"
	SpeciesUnicorn Species = "unicorn"
	SpeciesGriffin Species = "griffin"
	SpeciesSpirit  Species = "spirit"
)

var AllSpecies = []Species{SpeciesDragon, SpeciesPhoenix, SpeciesUnicorn, SpeciesGriffin, SpeciesSpirit}

func ParseSpecies(raw string) (Species, bool) {
	for _, s := range AllSpecies {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

type Mood string

const (
	MoodHungry  Mood = "hungry"
	MoodTired   Mood = "tired"
	MoodExcited Mood = "excited"
	MoodHappy   Mood = "happy"
	MoodSad     Mood = "sad"
	MoodCalm    Mood = "calm"
)

var AllMoods = []Mood{MoodHungry, MoodTired, MoodExcited, MoodHappy, MoodSad, MoodCalm}

func ParseMood(raw string) (Mood, bool) {
	for _, m := range AllMoods {
		if string(m) == raw {
			return m, true
		}
	}
	return "", false
}

type HiddenTraits struct {
	Trust     int `json:"trust"`
	Empathy   int `json:"empathy"`
	Curiosity int `json:"curiosity"`
}

func (h HiddenTraits) Sum() int {
	return h.Trust + h.Empathy + h.Curiosity
}

type Pet struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Owner        string       `json:"owner"`
	TokenID      string       `json:"tokenId,omitempty"`
	Species      Species      `json:"species"`
	Color        string       `json:"color"`
	Pattern      string       `json:"pattern"`
	Energy       int          `json:"energy"`
	Hunger       int          `json:"hunger"`
	Happiness    int          `json:"happiness"`
	Level        int          `json:"level"`
	Experience   int          `json:"experience"`
	HiddenTraits HiddenTraits `json:"hiddenTraits"`
	Mood         Mood         `json:"mood"`
	LastFed      time.Time    `json:"lastFed"`
	LastPlayed   time.Time    `json:"lastPlayed"`
	BirthDate    time.Time    `json:"birthDate"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func New(id, name, owner string, species Species, color, pattern string, now time.Time) Pet {
	p := Pet{
		ID:         id,
		Name:       name,
		Owner:      owner,
		Species:    species,
		Color:      color,
		Pattern:    pattern,
		Energy:     MaxStat,
		Hunger:     MaxStat,
		Happiness:  MaxStat,
		Level:      1,
		Experience: 0,
		HiddenTraits: HiddenTraits{
			Trust:     InitialTrait,
			Empathy:   InitialTrait,
			Curiosity: InitialTrait,
		},
		LastFed:    now,
		LastPlayed: now,
		BirthDate:  now,
		UpdatedAt:  now,
	}
	p.Mood = ClassifyMood(p.Hunger, p.Energy, p.Happiness)
	return p
}

type EventType string

const (
	EventFeed         EventType = "feed"
	EventPlay         EventType = "play"
	EventRest         EventType = "rest"
	EventMeditate     EventType = "meditate"
	EventGroom        EventType = "groom"
	EventTrain        EventType = "train"
	EventSocial       EventType = "social"
	EventDecay        EventType = "decay"
	EventNotification EventType = "notification"
	EventExperience   EventType = "experience"
)

type GameEvent struct {
	ID                 string       `json:"id"`
	PetID              string       `json:"petId"`
	Type               EventType    `json:"type"`
	Description        string       `json:"description"`
	EnergyChange       int          `json:"energyChange"`
	HungerChange       int          `json:"hungerChange"`
	HappinessChange    int          `json:"happinessChange"`
	ExperienceGained   int          `json:"experienceGained"`
	HiddenTraitsChange HiddenTraits `json:"hiddenTraitsChange"`
	OccurredAt         time.Time    `json:"timestamp"`
}
