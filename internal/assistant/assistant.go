package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	promptFile = "assistant.json"

	// DefaultMaxSuggestions caps how many suggestions one request returns.
	DefaultMaxSuggestions = 5
	// MaxMessageLength is the longest user message accepted, in characters.
	MaxMessageLength = 4000
)

// Sections are the résumé sections a suggestion may target.
var Sections = []string{"personal", "summary", "experience", "education", "skills", "projects"}

var suggestionSchema = llm.OutputSchema{
	Name:  "Suggestions",
	Array: true,
	Fields: []llm.SchemaField{
		{Name: "section", Description: "one of " + strings.Join(Sections, ", "), Required: true},
		{Name: "current", Description: "the text being replaced, or the entry it belongs to"},
		{Name: "suggested", Description: "the proposed replacement text", Required: true},
		{Name: "reasoning", Description: "one sentence on why the change helps"},
	},
}

// Service answers suggestion and chat requests about one résumé.
type Service struct {
	client         llm.Client
	maxSuggestions int
	verbose        bool
}

// Option configures a Service.
type Option func(*Service)

// WithMaxSuggestions overrides DefaultMaxSuggestions.
func WithMaxSuggestions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// WithVerbose logs prompts and raw responses.
func WithVerbose(verbose bool) Option {
	return func(s *Service) { s.verbose = verbose }
}

// New creates a Service backed by client.
func New(client llm.Client, opts ...Option) *Service {
	s := &Service{client: client, maxSuggestions: DefaultMaxSuggestions}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SystemInstruction returns the instruction the model should be configured with.
func SystemInstruction() (string, error) {
	return prompts.Get(promptFile, "system")
}

// Suggest asks the model for concrete edits that answer message.
// Suggestions for unknown sections or without replacement text are dropped.
func (s *Service) Suggest(ctx context.Context, content *types.Content, message string) ([]types.Suggestion, error) {
	message, err := checkMessage(message)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = types.NewContent()
	}

	task, err := prompts.Render(promptFile, "suggest_task", map[string]string{
		"MaxSuggestions": strconv.Itoa(s.maxSuggestions),
	})
	if err != nil {
		return nil, &Error{Message: "failed to load suggestion prompt", Cause: err}
	}
	resumeJSON, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, &Error{Message: "failed to encode resume", Cause: err}
	}

	schema := suggestionSchema
	schema.Description = task
	prompt := llm.BuildJSONPrompt(schema,
		llm.PromptSection{Title: "Resume", Body: string(resumeJSON)},
		llm.PromptSection{Title: "User request", Body: message},
	)
	if s.verbose {
		log.Printf("[assistant] suggest prompt: %d bytes", len(prompt))
	}

	raw, err := s.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &Error{Message: "failed to generate suggestions", Cause: err}
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		if s.verbose {
			log.Printf("[assistant] unparseable response: %s", raw)
		}
		return nil, &Error{Message: "failed to parse suggestions", Cause: err}
	}
	suggestions = filterSuggestions(suggestions, s.maxSuggestions)
	if s.verbose {
		log.Printf("[assistant] %d suggestion(s)", len(suggestions))
	}
	return suggestions, nil
}

// Chat streams a plain-text reply to message. The résumé is sent as it reads when rendered
// with its own template.
func (s *Service) Chat(ctx context.Context, content *types.Content, message string, onChunk func(string) error) error {
	message, err := checkMessage(message)
	if err != nil {
		return err
	}
	if content == nil {
		content = types.NewContent()
	}

	doc, err := rendering.Render(content.Template, content)
	if err != nil {
		return &Error{Message: "failed to render resume", Cause: err}
	}
	text, err := rendering.PlainText(doc.HTML)
	if err != nil {
		return &Error{Message: "failed to extract resume text", Cause: err}
	}

	prompt, err := prompts.Render(promptFile, "chat", map[string]string{
		"Resume":   text,
		"Template": doc.Template,
		"Message":  message,
	})
	if err != nil {
		return &Error{Message: "failed to load chat prompt", Cause: err}
	}

	chunks := 0
	err = s.client.StreamContent(ctx, prompt, llm.TierLite, func(chunk string) error {
		if chunk == "" {
			return nil
		}
		chunks++
		return onChunk(chunk)
	})
	if err != nil {
		return &Error{Message: "chat stream failed", Cause: err}
	}
	if s.verbose {
		log.Printf("[assistant] chat reply streamed in %d chunk(s)", chunks)
	}
	return nil
}

func checkMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", &InputError{Field: "message", Message: "must not be empty"}
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return "", &InputError{Field: "message", Message: fmt.Sprintf("must be at most %d characters", MaxMessageLength)}
	}
	return message, nil
}

// parseSuggestions accepts a bare array, an object wrapping one under "suggestions",
// or either of those embedded in surrounding prose.
func parseSuggestions(raw string) ([]types.Suggestion, error) {
	text := llm.CleanJSONBlock(raw)
	if list, err := decodeSuggestions(text); err == nil {
		return list, nil
	}
	extracted := llm.ExtractJSON(text)
	if extracted == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}
	return decodeSuggestions(extracted)
}

func decodeSuggestions(text string) ([]types.Suggestion, error) {
	var list []types.Suggestion
	if err := json.Unmarshal([]byte(text), &list); err == nil {
		return list, nil
	}
	var wrapped types.SuggestResponse
	if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}
	if wrapped.Suggestions == nil {
		return nil, fmt.Errorf("response has no suggestions field")
	}
	return wrapped.Suggestions, nil
}

func filterSuggestions(in []types.Suggestion, limit int) []types.Suggestion {
	out := make([]types.Suggestion, 0, len(in))
	for _, sg := range in {
		sg.Section = strings.ToLower(strings.TrimSpace(sg.Section))
		sg.Suggested = strings.TrimSpace(sg.Suggested)
		if sg.Suggested == "" || !isSection(sg.Section) {
			continue
		}
		sg.Current = strings.TrimSpace(sg.Current)
		sg.Reasoning = strings.TrimSpace(sg.Reasoning)
		out = append(out, sg)
		if len(out) == limit {
			break
		}
	}
	return out
}

func isSection(name string) bool {
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}
