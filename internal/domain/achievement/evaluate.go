package achievement

import (
	"etherpets/internal/domain/pet"
	"etherpets/internal/domain/user"
)

type Evaluation struct {
	User     user.User      `json:"-"`
	Unlocked []Definition   `json:"unlocked"`
	Progress map[string]int `json:"progress"`
}

// Evaluate unlocks every satisfied definition the user does not hold yet and
// reports progress for the whole catalog. Held ids are never re-awarded.
func Evaluate(current user.User, pets []pet.Pet, events []pet.GameEvent) Evaluation {
	f := Facts{Pets: pets, Events: events, User: current}
	u := current.Clone()
	out := Evaluation{Progress: make(map[string]int, len(catalog))}

	for _, d := range catalog {
		progress := d.Progress(f)
		out.Progress[d.ID] = progress
		if u.HasAchievement(d.ID) || progress < 100 {
			continue
		}
		u.Achievements = append(u.Achievements, d.ID)
		u.AchievementPoints += d.Points
		u.Coins += d.Points * CoinsPerPoint
		out.Unlocked = append(out.Unlocked, d)
	}

	out.User = u
	return out
}
