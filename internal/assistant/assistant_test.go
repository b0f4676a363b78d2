package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	jsonResponse string
	chunks       []string
	err          error

	prompt string
	tier   llm.ModelTier
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompt, f.tier = prompt, tier
	return f.jsonResponse, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompt, f.tier = prompt, tier
	return f.jsonResponse, f.err
}

func (f *fakeClient) StreamContent(_ context.Context, prompt string, tier llm.ModelTier, onChunk func(string) error) error {
	f.prompt, f.tier = prompt, tier
	if f.err != nil {
		return f.err
	}
	for _, c := range f.chunks {
		if err := onChunk(c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeClient) Close() error { return nil }

func sampleContent() *types.Content {
	c := types.NewContent()
	c.Personal.Name = "Ada Lovelace"
	c.Summary = "Engineer who likes engines."
	c.Experience = []types.Experience{{Role: "Analyst", Company: "Engine Co", Period: "1842 - 1843"}}
	c.Skills = []string{"Mathematics", "Notes"}
	c.Template = "modern"
	return c
}

func TestSuggest_ParsesArray(t *testing.T) {
	client := &fakeClient{jsonResponse: `[
		{"section":"summary","current":"Engineer who likes engines.","suggested":"Analytical engineer.","reasoning":"Sharper"},
		{"section":"Skills","suggested":"  Mathematics, Algorithms  "}
	]`}
	svc := New(client)

	got, err := svc.Suggest(context.Background(), sampleContent(), "Tighten my summary")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "summary", got[0].Section)
	assert.Equal(t, "Analytical engineer.", got[0].Suggested)
	assert.Equal(t, "skills", got[1].Section)
	assert.Equal(t, "Mathematics, Algorithms", got[1].Suggested)

	assert.Equal(t, llm.TierStandard, client.tier)
	assert.Contains(t, client.prompt, "Ada Lovelace")
	assert.Contains(t, client.prompt, "Tighten my summary")
	assert.Contains(t, client.prompt, `"suggested"`)
	assert.Contains(t, client.prompt, "at most 5 suggestions")
}

func TestSuggest_AcceptsWrappedAndEmbeddedJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"wrapped object", `{"suggestions":[{"section":"summary","suggested":"x"}]}`},
		{"code fence", "```json\n[{\"section\":\"summary\",\"suggested\":\"x\"}]\n```"},
		{"prose around", `Sure! Here they are: [{"section":"summary","suggested":"x"}] Hope it helps.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&fakeClient{jsonResponse: tt.response})
			got, err := svc.Suggest(context.Background(), sampleContent(), "help")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "x", got[0].Suggested)
		})
	}
}

func TestSuggest_FiltersAndCaps(t *testing.T) {
	client := &fakeClient{jsonResponse: `[
		{"section":"hobbies","suggested":"Chess"},
		{"section":"summary","suggested":""},
		{"section":"summary","suggested":"one"},
		{"section":"skills","suggested":"two"},
		{"section":"projects","suggested":"three"}
	]`}
	svc := New(client, WithMaxSuggestions(2))

	got, err := svc.Suggest(context.Background(), sampleContent(), "help")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Suggested)
	assert.Equal(t, "two", got[1].Suggested)
	assert.Contains(t, client.prompt, "at most 2 suggestions")
}

func TestSuggest_Errors(t *testing.T) {
	t.Run("empty message", func(t *testing.T) {
		client := &fakeClient{}
		_, err := New(client).Suggest(context.Background(), sampleContent(), "   ")
		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, "message", inputErr.Field)
		assert.Empty(t, client.prompt, "model must not be called")
	})

	t.Run("message too long", func(t *testing.T) {
		_, err := New(&fakeClient{}).Suggest(context.Background(), sampleContent(), strings.Repeat("a", MaxMessageLength+1))
		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr))
	})

	t.Run("model failure", func(t *testing.T) {
		cause := errors.New("quota exceeded")
		_, err := New(&fakeClient{err: cause}).Suggest(context.Background(), sampleContent(), "help")
		var assistantErr *Error
		require.True(t, errors.As(err, &assistantErr))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("unparseable response", func(t *testing.T) {
		_, err := New(&fakeClient{jsonResponse: "I cannot help with that."}).Suggest(context.Background(), sampleContent(), "help")
		var assistantErr *Error
		require.True(t, errors.As(err, &assistantErr))
		assert.Contains(t, err.Error(), "failed to parse suggestions")
	})
}

func TestSuggest_NilContent(t *testing.T) {
	client := &fakeClient{jsonResponse: `[]`}
	got, err := New(client).Suggest(context.Background(), nil, "Where do I start?")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, client.prompt, `"experience": []`)
}

func TestChat_StreamsChunks(t *testing.T) {
	client := &fakeClient{chunks: []string{"Try ", "", "stronger verbs."}}
	var got []string

	err := New(client).Chat(context.Background(), sampleContent(), "How is my experience section?", func(chunk string) error {
		got = append(got, chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Try ", "stronger verbs."}, got)

	assert.Equal(t, llm.TierLite, client.tier)
	assert.Contains(t, client.prompt, "Ada Lovelace")
	assert.Contains(t, client.prompt, "Engine Co")
	assert.Contains(t, client.prompt, "modern template")
	assert.Contains(t, client.prompt, "User message: How is my experience section?")
	assert.NotContains(t, client.prompt, "<", "the résumé is sent as plain text")
}

func TestChat_UnknownTemplateFallsBack(t *testing.T) {
	client := &fakeClient{chunks: []string{"ok"}}
	c := sampleContent()
	c.Template = "nope"

	err := New(client).Chat(context.Background(), c, "hi", func(string) error { return nil })
	require.NoError(t, err)
	assert.Contains(t, client.prompt, "classic template")
}

func TestChat_CallbackErrorStops(t *testing.T) {
	stop := errors.New("client went away")
	client := &fakeClient{chunks: []string{"a", "b", "c"}}
	calls := 0

	err := New(client).Chat(context.Background(), sampleContent(), "hi", func(string) error {
		calls++
		return stop
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestSystemInstruction(t *testing.T) {
	text, err := SystemInstruction()
	require.NoError(t, err)
	assert.Contains(t, text, "Never invent")
}
