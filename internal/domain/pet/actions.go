package pet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrUnknownAction = errors.New("unknown action")

type ActionType string

const (
	ActionFeed     ActionType = "feed"
	ActionPlay     ActionType = "play"
	ActionTrain    ActionType = "train"
	ActionMeditate ActionType = "meditate"
)

func ParseAction(raw string) (ActionType, bool) {
	switch t := ActionType(strings.TrimSpace(raw)); t {
	case ActionFeed, ActionPlay, ActionTrain, ActionMeditate:
		return t, true
	default:
		return "", false
	}
}

type ActionProfile struct {
	EventType      EventType
	DefaultVariant string
	Variants       map[string]Delta
	Describe       func(name, variant string) string
}

func DefaultActionProfiles() map[ActionType]ActionProfile {
	return map[ActionType]ActionProfile{
		ActionFeed: {
			EventType:      EventFeed,
			DefaultVariant: "basic",
			Variants: map[string]Delta{
				"basic":   {Hunger: 25, Energy: 5, Happiness: 5, Experience: 5, Traits: HiddenTraits{Trust: 1}},
				"premium": {Hunger: 40, Energy: 10, Happiness: 15, Experience: 10, Traits: HiddenTraits{Trust: 2}},
				"treat":   {Hunger: 10, Energy: 5, Happiness: 20, Experience: 8, Traits: HiddenTraits{Trust: 1}},
			},
			Describe: func(name, variant string) string {
				return fmt.Sprintf("%s enjoyed a %s meal", name, variant)
			},
		},
		ActionPlay: {
			EventType:      EventPlay,
			DefaultVariant: "ball",
			Variants: map[string]Delta{
				"ball":   {Happiness: 20, Energy: -10, Hunger: -5, Experience: 10, Traits: HiddenTraits{Empathy: 1}},
				"puzzle": {Happiness: 15, Energy: -5, Hunger: -5, Experience: 15, Traits: HiddenTraits{Curiosity: 2}},
				"chase":  {Happiness: 25, Energy: -15, Hunger: -10, Experience: 12, Traits: HiddenTraits{Empathy: 2}},
			},
			Describe: func(name, variant string) string {
				return fmt.Sprintf("%s played %s", name, variant)
			},
		},
		ActionTrain: {
			EventType:      EventTrain,
			DefaultVariant: "agility",
			Variants: map[string]Delta{
				"agility":      {Energy: -15, Hunger: -10, Happiness: 5, Experience: 25, Traits: HiddenTraits{Trust: 1}},
				"intelligence": {Energy: -10, Hunger: -5, Experience: 30, Traits: HiddenTraits{Curiosity: 2}},
				"strength":     {Energy: -20, Hunger: -15, Happiness: 5, Experience: 25, Traits: HiddenTraits{Trust: 1}},
			},
			Describe: func(name, variant string) string {
				return fmt.Sprintf("%s completed %s training", name, variant)
			},
		},
	}
}

type ActionResult struct {
	Pet       Pet       `json:"pet"`
	Delta     Delta     `json:"delta"`
	LeveledUp bool      `json:"leveledUp"`
	NewLevel  int       `json:"newLevel,omitempty"`
	Event     GameEvent `json:"event"`
}

// ApplyAction resolves the delta row for action/variant and applies it. Unknown
// variants fall back to the action's default row.
func ApplyAction(p Pet, action ActionType, variant string, now time.Time) (ActionResult, error) {
	if action == ActionMeditate {
		minutes := MeditateMinutes(variant)
		d := Delta{
			Energy:     minutes / 2,
			Happiness:  minutes / 5,
			Experience: minutes / 2,
			Traits:     HiddenTraits{Empathy: 1},
		}
		res := ApplyEffect(p, EventMeditate, d, fmt.Sprintf("%s meditated for %d minutes", p.Name, minutes), now)
		res.Pet.Mood = MoodCalm
		return res, nil
	}

	profile, ok := DefaultActionProfiles()[action]
	if !ok {
		return ActionResult{}, ErrUnknownAction
	}
	variant = strings.ToLower(strings.TrimSpace(variant))
	d, ok := profile.Variants[variant]
	if !ok {
		variant = profile.DefaultVariant
		d = profile.Variants[variant]
	}
	return ApplyEffect(p, profile.EventType, d, profile.Describe(p.Name, variant), now), nil
}

func MeditateMinutes(raw string) int {
	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultMeditateMinutes
	}
	if minutes < MinMeditateMinutes {
		return MinMeditateMinutes
	}
	if minutes > MaxMeditateMinutes {
		return MaxMeditateMinutes
	}
	return minutes
}

func ApplyEffect(p Pet, eventType EventType, d Delta, description string, now time.Time) ActionResult {
	next := p
	applied := applyBounded(&next, d)
	next, leveledUp, newLevel := AddExperience(next, d.Experience)

	switch eventType {
	case EventFeed:
		next.LastFed = now
	case EventPlay:
		next.LastPlayed = now
	}
	next.Reclassify()
	next.UpdatedAt = now

	return ActionResult{
		Pet:       next,
		Delta:     applied,
		LeveledUp: leveledUp,
		NewLevel:  newLevel,
		Event: GameEvent{
			PetID:              p.ID,
			Type:               eventType,
			Description:        description,
			EnergyChange:       applied.Energy,
			HungerChange:       applied.Hunger,
			HappinessChange:    applied.Happiness,
			ExperienceGained:   applied.Experience,
			HiddenTraitsChange: applied.Traits,
			OccurredAt:         now,
		},
	}
}
