package shop

import (
	"errors"
	"fmt"
	"time"

	"etherpets/internal/domain/pet"
)

var ErrUnknownItem = errors.New("unknown item")

type ItemID string

const (
	ItemBasicKibble    ItemID = "basic_kibble"
	ItemGourmetMeal    ItemID = "gourmet_meal"
	ItemSqueakyToy     ItemID = "squeaky_toy"
	ItemEnergyPotion   ItemID = "energy_potion"
	ItemGroomingKit    ItemID = "grooming_kit"
	ItemTrainingManual ItemID = "training_manual"
)

type Item struct {
	ID          ItemID        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       int           `json:"price"`
	EventType   pet.EventType `json:"type"`
	Effect      pet.Delta     `json:"effect"`
}

var items = []Item{
	{
		ID: ItemBasicKibble, Name: "Basic Kibble", Description: "A simple, filling meal",
		Price: 10, EventType: pet.EventFeed,
		Effect: pet.Delta{Hunger: 20},
	},
	{
		ID: ItemGourmetMeal, Name: "Gourmet Meal", Description: "A luxurious feast",
		Price: 50, EventType: pet.EventFeed,
		Effect: pet.Delta{Hunger: 40, Happiness: 10},
	},
	{
		ID: ItemSqueakyToy, Name: "Squeaky Toy", Description: "Hours of noisy fun",
		Price: 30, EventType: pet.EventPlay,
		Effect: pet.Delta{Happiness: 20, Energy: -5},
	},
	{
		ID: ItemEnergyPotion, Name: "Energy Potion", Description: "Restores a large amount of energy",
		Price: 75, EventType: pet.EventRest,
		Effect: pet.Delta{Energy: 50},
	},
	{
		ID: ItemGroomingKit, Name: "Grooming Kit", Description: "Keeps your pet looking sharp",
		Price: 40, EventType: pet.EventGroom,
		Effect: pet.Delta{Happiness: 15, Traits: pet.HiddenTraits{Trust: 2}},
	},
	{
		ID: ItemTrainingManual, Name: "Training Manual", Description: "Advanced lessons for clever pets",
		Price: 120, EventType: pet.EventTrain,
		Effect: pet.Delta{Experience: 50, Traits: pet.HiddenTraits{Curiosity: 3}},
	},
}

func All() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func Get(id string) (Item, error) {
	for _, it := range items {
		if string(it.ID) == id {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
}

func ApplyItem(p pet.Pet, it Item, now time.Time) pet.ActionResult {
	return pet.ApplyEffect(p, it.EventType, it.Effect, fmt.Sprintf("%s used %s", p.Name, it.Name), now)
}
