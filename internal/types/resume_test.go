//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSaveResumeRequest_Validate(t *testing.T) {
	valid := SaveResumeRequest{Title: "Backend", Template: "modern", Content: json.RawMessage(`{}`)}
	assert.NoError(t, valid.Validate())

	missing := SaveResumeRequest{Title: "Backend"}
	assert.Error(t, missing.Validate())

	longTitle := SaveResumeRequest{Title: strings.Repeat("a", 201), Content: json.RawMessage(`{}`)}
	assert.Error(t, longTitle.Validate())
}

func TestSuggestRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SuggestRequest{Message: "tighten my summary"}).Validate())
	assert.NoError(t, (&SuggestRequest{Message: "hi", ResumeID: uuid.NewString()}).Validate())
	assert.Error(t, (&SuggestRequest{}).Validate())
	assert.Error(t, (&SuggestRequest{Message: "hi", ResumeID: "not-a-uuid"}).Validate())
}
