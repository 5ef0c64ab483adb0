package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a single practice item inside a lesson.
type Exercise struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// Lesson is a catalogue entry. The auth core only references lessons by ID
// when recording completion; everything else is plain CRUD.
type Lesson struct {
	ID        uuid.UUID
	Title     string
	Exercises []Exercise
	CreatedAt time.Time
	UpdatedAt time.Time
}
