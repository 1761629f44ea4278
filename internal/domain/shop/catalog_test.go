package shop

import (
	"errors"
	"testing"
	"time"

	"etherpets/internal/domain/pet"
)

func TestCatalogOrderAndLookup(t *testing.T) {
	all := All()
	if len(all) != 6 || all[0].ID != ItemBasicKibble || all[5].ID != ItemTrainingManual {
		t.Fatalf("unexpected catalog order: %+v", all)
	}
	it, err := Get("energy_potion")
	if err != nil || it.Price != 75 || it.EventType != pet.EventRest {
		t.Fatalf("unexpected energy_potion: %+v err=%v", it, err)
	}
	if _, err := Get("rocket"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestApplyItem(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := pet.New("pet-1", "Rex", "0xabc", pet.SpeciesGriffin, "ivory", "striped", now)
	p.Hunger = 50
	p.Happiness = 50

	it, _ := Get("gourmet_meal")
	res := ApplyItem(p, it, now.Add(time.Hour))
	if res.Pet.Hunger != 90 || res.Pet.Happiness != 60 {
		t.Fatalf("expected hunger=90 happiness=60, got %d/%d", res.Pet.Hunger, res.Pet.Happiness)
	}
	if res.Event.Type != pet.EventFeed || res.Event.Description != "Rex used Gourmet Meal" {
		t.Fatalf("unexpected event %+v", res.Event)
	}
	if !res.Pet.LastFed.Equal(now.Add(time.Hour)) {
		t.Fatalf("feeding item should stamp lastFed")
	}

	manual, _ := Get("training_manual")
	res = ApplyItem(p, manual, now)
	if res.Pet.Experience != 50 || res.Pet.HiddenTraits.Curiosity != 53 {
		t.Fatalf("unexpected training manual result %+v", res.Pet)
	}
}
