package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostDraftValidate(t *testing.T) {
	cases := []struct {
		name  string
		draft PostDraft
		msg   string
	}{
		{name: "complete", draft: PostDraft{Name: "Ada", Prompt: "a cat", Photo: "data:image/png;base64,AAAA"}},
		{name: "blank name", draft: PostDraft{Name: "  ", Prompt: "a cat", Photo: "x"}, msg: "name and prompt are required"},
		{name: "blank prompt", draft: PostDraft{Name: "Ada", Prompt: "\t", Photo: "x"}, msg: "name and prompt are required"},
		{name: "missing photo", draft: PostDraft{Name: "Ada", Prompt: "a cat"}, msg: "photo is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if tc.msg == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, tc.msg, ValidationMessage(err))
		})
	}
}

func TestPostDraftNormalizeKeepsPhoto(t *testing.T) {
	d := PostDraft{Name: " Ada ", Prompt: " a cat ", Photo: " raw "}.Normalize()
	assert.Equal(t, PostDraft{Name: "Ada", Prompt: "a cat", Photo: " raw "}, d)
}
