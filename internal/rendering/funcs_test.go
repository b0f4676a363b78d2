package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"go", "Go."},
		{"Go.", "Go."},
		{"really?", "Really?"},
		{"  énergie  ", "Énergie."},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sentence(tt.in), "input %q", tt.in)
	}
}

func TestExternalURL(t *testing.T) {
	assert.Equal(t, "https://github.com/ada", externalURL("github.com/ada"))
	assert.Equal(t, "http://ada.dev", externalURL("http://ada.dev"))
	assert.Equal(t, "HTTPS://ADA.DEV", externalURL("HTTPS://ADA.DEV"))
	assert.Equal(t, "https://cdn.example.com/x", externalURL("//cdn.example.com/x"))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "https://x/y.png", imageURL(" https://x/y.png "))
	assert.Equal(t, "data:image/png;base64,AAAA", imageURL("data:image/png;base64,AAAA"))
	assert.Empty(t, imageURL("javascript:alert(1)"))
	assert.Empty(t, imageURL("file:///etc/passwd"))
	assert.Empty(t, imageURL(""))
}

func TestJoinParts(t *testing.T) {
	assert.Equal(t, "", string(joinParts("•")))
	assert.Equal(t, "a", string(joinParts("•", "", "a", " ")))
	assert.Equal(t, `a<span class="sep">|</span>b`, string(joinParts("|", "a", "", "b")))
	assert.Equal(t, `&lt;i&gt;`, string(joinParts("/", "<i>")))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", initials("Ada Lovelace"))
	assert.Equal(t, "YN", initials(PlaceholderName))
	assert.Equal(t, "C", initials("cher"))
	assert.Equal(t, "JR", initials("John Ronald Tolkien"))
	assert.Equal(t, "", initials(""))
}
