package app

import (
	"strings"

	"github.com/plumeworks/plume-be/util"
)

// PostInput carries the submitted fields of a post create/edit request. The
// struct is never mutated on validation failure so the caller can redisplay
// the submitted values.
type PostInput struct {
	Text          string `json:"text"`
	GroupSlug     string `json:"groupSlug"`
	ImageBlobName string `json:"imageBlobName"`
}

// NormalizeText strips markup and surrounding whitespace. Validation runs on
// the normalized form.
func NormalizeText(text string) string {
	return strings.TrimSpace(util.XSSSanitize(text))
}

// ValidatePostInput is pure: it needs no store. Group existence is checked
// separately by the mutators.
func ValidatePostInput(in *PostInput) *ValidationError {
	if NormalizeText(in.Text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	return nil
}

func ValidateCommentText(text string) *ValidationError {
	if NormalizeText(text) == "" {
		return &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	return nil
}
