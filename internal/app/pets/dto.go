package pets

import "etherpets/internal/domain/pet"

type CreateRequest struct {
	Owner   string
	Name    string
	Species string
}

type View struct {
	Pet         pet.Pet `json:"pet"`
	MoodMessage string  `json:"moodMessage"`
	Evolution   string  `json:"evolution"`
}
