package chat

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"etherpets/internal/domain/pet"
)

// Picker chooses an index in [0,n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type Generator struct {
	Rand Picker
}

type Reply struct {
	Text    string   `json:"reply"`
	NewMood pet.Mood `json:"newMood,omitempty"`
}

var moodMessages = map[pet.Mood][]string{
	pet.MoodHungry: {
		"%s's tummy is rumbling. Something tasty would help.",
		"%s keeps glancing at the food bowl.",
		"%s could really use a snack right now.",
	},
	pet.MoodTired: {
		"%s is yawning and can barely keep their eyes open.",
		"%s curled up for a nap.",
		"%s needs some rest before the next adventure.",
	},
	pet.MoodExcited: {
		"%s is bouncing around with boundless energy!",
		"%s can't wait to see what happens next!",
		"%s is practically glowing with excitement!",
	},
	pet.MoodHappy: {
		"%s is content and wagging happily.",
		"%s hums a cheerful little tune.",
		"%s is having a lovely day with you.",
	},
	pet.MoodSad: {
		"%s looks a little down. Some play time might cheer them up.",
		"%s is sitting quietly in the corner.",
		"%s misses spending time with you.",
	},
	pet.MoodCalm: {
		"%s is resting peacefully.",
		"%s breathes slowly, calm and centered.",
		"%s watches the world go by in quiet contentment.",
	},
}

type keywordRule struct {
	keywords []string
	replies  []string
	mood     pet.Mood
}

var keywordRules = []keywordRule{
	{
		keywords: []string{"hungry", "food", "eat", "snack"},
		replies:  []string{"%s perks up at the mention of food!", "Did someone say snack? %s is all ears."},
	},
	{
		keywords: []string{"play", "game", "ball", "fun"},
		replies:  []string{"%s is ready to play!", "%s grabs a toy and looks at you expectantly."},
		mood:     pet.MoodExcited,
	},
	{
		keywords: []string{"love", "good", "cute", "best"},
		replies:  []string{"%s nuzzles you affectionately.", "%s looks at you with pure adoration."},
		mood:     pet.MoodHappy,
	},
	{
		keywords: []string{"sleep", "tired", "rest", "nap"},
		replies:  []string{"%s lets out a sleepy yawn.", "%s settles down for some quiet time."},
		mood:     pet.MoodCalm,
	},
	{
		keywords: []string{"sad", "bad", "sorry"},
		replies:  []string{"%s leans against you to comfort you.", "%s stays close by your side."},
		mood:     pet.MoodCalm,
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		replies:  []string{"%s greets you with a happy chirp!", "%s waves hello!"},
	},
}

var genericReplies = []string{
	"%s tilts their head curiously.",
	"%s listens intently to every word.",
	"%s blinks at you thoughtfully.",
	"%s makes a soft, friendly sound.",
}

func (g Generator) MoodMessage(p pet.Pet) string {
	msgs, ok := moodMessages[p.Mood]
	if !ok {
		msgs = moodMessages[pet.MoodHappy]
	}
	return fmt.Sprintf(g.pick(msgs), p.Name)
}

// Respond matches message against the keyword rules. An unmatched message gets
// a generic reply and leaves the mood alone.
func (g Generator) Respond(message string, p pet.Pet) Reply {
	lower := strings.ToLower(message)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return Reply{Text: fmt.Sprintf(g.pick(rule.replies), p.Name), NewMood: rule.mood}
			}
		}
	}
	return Reply{Text: fmt.Sprintf(g.pick(genericReplies), p.Name)}
}

func (g Generator) pick(options []string) string {
	if g.Rand == nil {
		return options[rand.IntN(len(options))]
	}
	return options[g.Rand.IntN(len(options))]
}
