package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("assistant.json", "system")
	require.NoError(t, err)
	assert.Contains(t, prompt, "résumé coach")
}

func TestGet_Errors(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")

	_, err = Get("assistant.json", "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
	assert.NotPanics(t, func() {
		MustGet("assistant.json", "chat")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"single", "Hello {{.Name}}!", map[string]string{"Name": "Ada"}, "Hello Ada!"},
		{"repeated", "{{.A}}-{{.A}}", map[string]string{"A": "x"}, "x-x"},
		{"missing left in place", "{{.A}} {{.B}}", map[string]string{"A": "x"}, "x {{.B}}"},
		{"values are not expanded", "{{.A}}", map[string]string{"A": "{{.B}}", "B": "no"}, "{{.B}}"},
		{"nil data", "plain", nil, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestRender(t *testing.T) {
	out, err := Render("assistant.json", "chat", map[string]string{
		"Resume":   "RESUME",
		"Template": "modern",
		"Message":  "Make it punchier",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "RESUME")
	assert.Contains(t, out, "modern template")
	assert.Contains(t, out, "User message: Make it punchier")

	_, err = Render("assistant.json", "chat", map[string]string{"Resume": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Template")
	assert.Contains(t, err.Error(), "Message")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("assistant.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"chat", "suggest_task", "system"}, keys)
}
