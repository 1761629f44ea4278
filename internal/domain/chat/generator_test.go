package chat

import (
	"strings"
	"testing"
	"time"

	"etherpets/internal/domain/pet"
)

type fixedPicker int

func (f fixedPicker) IntN(n int) int { return int(f) % n }

func testPet(mood pet.Mood) pet.Pet {
	p := pet.New("pet-1", "Rex", "0xabc", pet.SpeciesPhoenix, "golden", "flame", time.Now())
	p.Mood = mood
	return p
}

func TestMoodMessageCoversEveryMood(t *testing.T) {
	g := Generator{Rand: fixedPicker(0)}
	for _, m := range pet.AllMoods {
		msg := g.MoodMessage(testPet(m))
		if !strings.Contains(msg, "Rex") {
			t.Fatalf("mood %s: expected name in %q", m, msg)
		}
	}
}

func TestRespondKeywordPriority(t *testing.T) {
	g := Generator{Rand: fixedPicker(0)}

	r := g.Respond("Want to PLAY with the ball?", testPet(pet.MoodSad))
	if r.NewMood != pet.MoodExcited || r.Text != "Rex is ready to play!" {
		t.Fatalf("unexpected play reply %+v", r)
	}

	// food outranks play
	r = g.Respond("play then food", testPet(pet.MoodSad))
	if r.NewMood != "" || !strings.Contains(r.Text, "food") {
		t.Fatalf("expected food reply without mood change, got %+v", r)
	}
}

func TestRespondFallsBackToGeneric(t *testing.T) {
	g := Generator{Rand: fixedPicker(2)}
	r := g.Respond("qwerty", testPet(pet.MoodHappy))
	if r.NewMood != "" {
		t.Fatalf("generic reply must not change mood, got %s", r.NewMood)
	}
	if r.Text != "Rex blinks at you thoughtfully." {
		t.Fatalf("unexpected generic reply %q", r.Text)
	}
}
