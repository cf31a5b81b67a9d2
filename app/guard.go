package app

import "github.com/plumeworks/plume-be/model"

// AuthorizePostMutation allows a post mutation only for the post's author.
// A nil principal is unauthenticated; the returned denial kinds stay
// distinguishable because their redirect semantics differ.
func AuthorizePostMutation(principal *model.User, post *model.Post) error {
	if principal == nil {
		return &DeniedError{Kind: DenialUnauthenticated}
	}
	if !post.CanEdit(principal) {
		return &DeniedError{Kind: DenialNotOwner}
	}
	return nil
}

// AuthorizeCommentCreation allows any authenticated principal to comment on
// any existing post. There is no ownership check.
func AuthorizeCommentCreation(principal *model.User) error {
	if principal == nil {
		return &DeniedError{Kind: DenialUnauthenticated}
	}
	return nil
}
