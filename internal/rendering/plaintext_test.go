package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	out, err := Render("ats", fullContent())
	require.NoError(t, err)

	text, err := PlainText(out.HTML)
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	assert.Equal(t, "Ada Lovelace", lines[0])
	assert.Contains(t, lines, "SUMMARY")
	assert.Contains(t, lines, "- Shipped things")
	assert.Contains(t, lines, "- Go.")
	assert.Contains(t, text, "Acme | Remote")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "--accent")

	for _, line := range lines {
		assert.Equal(t, strings.TrimSpace(line), line)
		assert.NotEmpty(t, line)
	}
}

func TestPlainText_KeepsSectionOrder(t *testing.T) {
	out, err := Render("fresher", fullContent())
	require.NoError(t, err)

	text, err := PlainText(out.HTML)
	require.NoError(t, err)
	assert.Less(t, strings.Index(text, "Education"), strings.Index(text, "Internships and Experience"))
}

func TestPlainText_Fragment(t *testing.T) {
	text, err := PlainText("<p>one <b>two</b></p><ul><li>three</li></ul>")
	require.NoError(t, err)
	assert.Equal(t, "one two\n- three", text)
}
