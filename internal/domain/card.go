package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors. All wrap ErrValidation.
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)

	// ErrCardContentEmpty is returned when a card's content is empty.
	ErrCardContentEmpty = fmt.Errorf("%w: card content cannot be empty", ErrValidation)

	// ErrCardContentInvalid is returned when a card's content is not valid JSON.
	ErrCardContentInvalid = fmt.Errorf("%w: card content must be valid JSON", ErrValidation)
)

// Card represents a single learning item. The content is stored as a JSONB
// structure, allowing for flexible card formats and future extensibility.
// Scheduling data lives in the card's SchedulingRecord, not here.
type Card struct {
	ID        uuid.UUID       `json:"id"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CardContent is the conventional shape of the content field. Cards may carry
// additional fields since content is stored as JSONB.
type CardContent struct {
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Hint  string   `json:"hint,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// NewCard creates a new Card with the given content.
// It generates a new UUID for the card ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewCard(content json.RawMessage) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:        uuid.New(),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if len(c.Content) == 0 {
		return ErrCardContentEmpty
	}

	var js json.RawMessage
	if err := json.Unmarshal(c.Content, &js); err != nil {
		return ErrCardContentInvalid
	}

	return nil
}
