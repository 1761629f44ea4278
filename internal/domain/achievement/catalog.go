package achievement

import (
	"etherpets/internal/domain/pet"
	"etherpets/internal/domain/user"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

const CoinsPerPoint = 10

type Facts struct {
	Pets   []pet.Pet
	Events []pet.GameEvent
	User   user.User
}

type Definition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Rarity      Rarity `json:"rarity"`

	progress func(Facts) int
}

// Progress is a percentage in [0,100]. A definition is unlocked at 100.
func (d Definition) Progress(f Facts) int {
	return clampPercent(d.progress(f))
}

func (d Definition) Unlocked(f Facts) bool {
	return d.Progress(f) >= 100
}

var catalog = []Definition{
	{
		ID: "first_pet", Name: "First Friend", Description: "Adopt your first pet",
		Points: 10, Rarity: RarityCommon,
		progress: func(f Facts) int { return percent(len(f.Pets), 1) },
	},
	{
		ID: "caretaker", Name: "Dedicated Caretaker", Description: "Log in 7 days in a row",
		Points: 50, Rarity: RarityRare,
		progress: func(f Facts) int { return percent(f.User.Streak, 7) },
	},
	{
		ID: "explorer", Name: "Explorer", Description: "Try 5 different kinds of activities",
		Points: 30, Rarity: RarityUncommon,
		progress: func(f Facts) int { return percent(distinctEventTypes(f.Events), 5) },
	},
	{
		ID: "trainer", Name: "Master Trainer", Description: "Raise a pet to level 10",
		Points: 100, Rarity: RarityEpic,
		progress: func(f Facts) int { return percent(maxLevel(f.Pets), 10) },
	},
	{
		ID: "social_butterfly", Name: "Social Butterfly", Description: "Chat with your pets 50 times",
		Points: 75, Rarity: RarityRare,
		progress: func(f Facts) int { return percent(countEvents(f.Events, pet.EventSocial), 50) },
	},
	{
		ID: "meditation_master", Name: "Meditation Master", Description: "Meditate 100 times",
		Points: 150, Rarity: RarityEpic,
		progress: func(f Facts) int { return percent(countEvents(f.Events, pet.EventMeditate), 100) },
	},
	{
		// No tracking exists for this one yet; it never unlocks.
		ID: "perfect_care", Name: "Perfect Care", Description: "Keep every stat above 80 for a week",
		Points: 200, Rarity: RarityLegendary,
		progress: func(Facts) int { return 0 },
	},
	{
		ID: "collector", Name: "Collector", Description: "Own 5 pets",
		Points: 100, Rarity: RarityRare,
		progress: func(f Facts) int { return percent(len(f.Pets), 5) },
	},
	{
		ID: "marathon", Name: "Marathon", Description: "Log in 30 days in a row",
		Points: 300, Rarity: RarityLegendary,
		progress: func(f Facts) int { return percent(f.User.Streak, 30) },
	},
	{
		ID: "wealthy", Name: "Wealthy", Description: "Hold 10000 coins",
		Points: 250, Rarity: RarityEpic,
		progress: func(f Facts) int { return percent(f.User.Coins, 10000) },
	},
}

func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

func Get(id string) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

func percent(current, target int) int {
	if target <= 0 {
		return 100
	}
	return current * 100 / target
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func countEvents(events []pet.GameEvent, t pet.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func distinctEventTypes(events []pet.GameEvent) int {
	seen := map[pet.EventType]struct{}{}
	for _, e := range events {
		seen[e.Type] = struct{}{}
	}
	return len(seen)
}

func maxLevel(pets []pet.Pet) int {
	best := 0
	for _, p := range pets {
		if p.Level > best {
			best = p.Level
		}
	}
	return best
}
