package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.suggestions = []types.Suggestion{
		{Section: "summary", Suggested: "Pioneer of computing.", Reasoning: "Stronger opening"},
	}
	token, _ := env.register(t, "ada@example.com")

	t.Run("inline content", func(t *testing.T) {
		body := `{"message":"Make my summary punchier","content":` + sampleRecord + `}`
		w := env.do(t, http.MethodPost, "/assistant/suggest", body, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decodeBody[types.SuggestResponse](t, w)
		require.Len(t, resp.Suggestions, 1)
		assert.Equal(t, "summary", resp.Suggestions[0].Section)

		assert.Equal(t, "Make my summary punchier", env.assistant.message)
		assert.Equal(t, "Ada Lovelace", env.assistant.content.Personal.Name)
	})

	t.Run("saved resume", func(t *testing.T) {
		r := env.createResume(t, token, "Main", `{"personal":{"name":"Saved Ada"}}`)
		body := `{"message":"Help","resume_id":"` + r.ID.String() + `"}`
		w := env.do(t, http.MethodPost, "/assistant/suggest", body, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Saved Ada", env.assistant.content.Personal.Name)
		assert.Equal(t, "classic", env.assistant.content.Template)
	})

	t.Run("saved template wins over content template", func(t *testing.T) {
		r := env.createResume(t, token, "Main", sampleRecord)
		require.Equal(t, "modern", r.Template)

		w := env.do(t, http.MethodPut, "/resumes/"+r.ID.String(),
			`{"title":"Main","template":"ats","content":`+sampleRecord+`}`, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := `{"message":"Help","resume_id":"` + r.ID.String() + `"}`
		w = env.do(t, http.MethodPost, "/assistant/suggest", body, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "ats", env.assistant.content.Template)

		w = env.do(t, http.MethodGet, "/resumes/"+r.ID.String()+"/preview", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ats", w.Header().Get("X-Resume-Template"))
	})

	t.Run("no resume at all", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/assistant/suggest", `{"message":"Where do I start?"}`, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, env.assistant.content.Personal.Name)
		assert.NotNil(t, env.assistant.content.Experience)
	})

	t.Run("someone else's resume", func(t *testing.T) {
		otherToken, _ := env.register(t, "grace@example.com")
		mine := env.createResume(t, token, "Mine", `{}`)
		body := `{"message":"Help","resume_id":"` + mine.ID.String() + `"}`
		w := env.do(t, http.MethodPost, "/assistant/suggest", body, otherToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad requests", func(t *testing.T) {
		tests := map[string]string{
			"missing message":    `{}`,
			"blank message":      `{"message":"   "}`,
			"bad resume id":      `{"message":"x","resume_id":"nope"}`,
			"non-object content": `{"message":"x","content":[1]}`,
		}
		for name, body := range tests {
			t.Run(name, func(t *testing.T) {
				w := env.do(t, http.MethodPost, "/assistant/suggest", body, token)
				assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			})
		}
	})

	t.Run("requires auth", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/assistant/suggest", `{"message":"x"}`, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestSuggest_AssistantErrors(t *testing.T) {
	t.Run("model failure", func(t *testing.T) {
		env := newTestEnv(t)
		env.assistant.err = &assistant.Error{Message: "model call failed", Cause: errors.New("quota")}
		token, _ := env.register(t, "ada@example.com")

		w := env.do(t, http.MethodPost, "/assistant/suggest", `{"message":"x"}`, token)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.NotContains(t, w.Body.String(), "quota")
	})

	t.Run("not configured", func(t *testing.T) {
		env := newTestEnv(t, withoutAssistant())
		token, _ := env.register(t, "ada@example.com")

		w := env.do(t, http.MethodPost, "/assistant/suggest", `{"message":"x"}`, token)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		w = env.do(t, http.MethodPost, "/assistant/chat/stream", `{"message":"x"}`, token)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestChatStream(t *testing.T) {
	t.Run("chunks then done", func(t *testing.T) {
		env := newTestEnv(t)
		env.assistant.chunks = []string{"Lead with ", "impact."}
		token, _ := env.register(t, "ada@example.com")

		w := env.do(t, http.MethodPost, "/assistant/chat/stream", `{"message":"Tips?"}`, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

		want := "event: chunk\ndata: {\"text\":\"Lead with \"}\n\n" +
			"event: chunk\ndata: {\"text\":\"impact.\"}\n\n" +
			"event: done\ndata: {\"status\":\"complete\"}\n\n"
		assert.Equal(t, want, w.Body.String())
	})

	t.Run("error after partial reply", func(t *testing.T) {
		env := newTestEnv(t)
		env.assistant.chunks = []string{"Partial"}
		env.assistant.err = errors.New("stream reset")
		token, _ := env.register(t, "ada@example.com")

		w := env.do(t, http.MethodPost, "/assistant/chat/stream", `{"message":"Tips?"}`, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "event: chunk")
		assert.Contains(t, w.Body.String(), "event: error")
		assert.NotContains(t, w.Body.String(), "event: done")
		assert.NotContains(t, w.Body.String(), "stream reset")
	})

	t.Run("validation happens before the stream opens", func(t *testing.T) {
		env := newTestEnv(t)
		token, _ := env.register(t, "ada@example.com")

		body := `{"message":"x","resume_id":"` + uuid.NewString() + `"}`
		w := env.do(t, http.MethodPost, "/assistant/chat/stream", body, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotEqual(t, "text/event-stream", w.Header().Get("Content-Type"))
	})
}
