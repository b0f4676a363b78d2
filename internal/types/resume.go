//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// SaveResumeRequest is the body of create and update résumé requests.
type SaveResumeRequest struct {
	Title    string          `json:"title" validate:"max=200"`
	Template string          `json:"template,omitempty" validate:"omitempty,max=64"`
	Content  json.RawMessage `json:"content" validate:"required"`
}

// Validate validates the SaveResumeRequest using the validator.
func (r *SaveResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Resume is a stored résumé as returned by the API.
// Content is returned exactly as stored; callers normalize it before rendering.
type Resume struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Title     string          `json:"title"`
	Template  string          `json:"template"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ResumeSummary is the lightweight listing view of a résumé.
type ResumeSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SuggestRequest asks the assistant for content suggestions.
// Either ResumeID or Content identifies the résumé being discussed.
type SuggestRequest struct {
	Message  string          `json:"message" validate:"required,max=4000"`
	ResumeID string          `json:"resume_id,omitempty" validate:"omitempty,uuid"`
	Content  json.RawMessage `json:"content,omitempty"`
}

// Validate validates the SuggestRequest using the validator.
func (r *SuggestRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Suggestion is a single assistant proposal for one résumé section.
type Suggestion struct {
	Section   string `json:"section"`
	Current   string `json:"current,omitempty"`
	Suggested string `json:"suggested"`
	Reasoning string `json:"reasoning,omitempty"`
}

// SuggestResponse wraps the assistant's suggestions.
type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}
