package app

import "fmt"

// NotFoundError reports that a referenced post, group or author does not
// exist. An empty feed is not a NotFoundError.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v %q not found", e.Resource, e.Key)
}

// ValidationError reports a malformed input field. The submitted values are
// left untouched in the caller's request so they can be redisplayed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %v: %v", e.Field, e.Reason)
}

type DenialKind string

const (
	// DenialUnauthenticated means the caller must authenticate and can then
	// be returned to the original action.
	DenialUnauthenticated DenialKind = "UNAUTHENTICATED"
	// DenialNotOwner means the caller is authenticated but is not the
	// content's author; the caller gets the read-only view instead.
	DenialNotOwner DenialKind = "NOT_OWNER"
)

// DeniedError reports an authorization failure. The two kinds are never
// merged: downstream behavior differs.
type DeniedError struct {
	Kind DenialKind
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("denied: %v", e.Kind)
}
