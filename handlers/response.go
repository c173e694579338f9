package handlers

import (
	"fmt"
	"reflect"
)

// Status classifies the outcome a handler reports for a query.
type Status string

const (
	StatusSuccess             Status = "success"
	StatusFailed              Status = "failed"
	StatusNotHandled          Status = "not_handled"
	StatusClarificationNeeded Status = "clarification_needed"
	StatusUnknown             Status = "unknown"
)

// Response is the result value every handler returns. Once constructed it
// is never mutated: fields are unexported and the metadata map is copied on
// the way in and on the way out, so no caller holds a reference into it.
type Response struct {
	status   Status
	message  string
	metadata map[string]any
}

// New returns a Response with empty metadata.
func New(status Status, message string) Response {
	return Response{status: status, message: message}
}

// NewWithMetadata returns a Response carrying a copy of metadata.
func NewWithMetadata(status Status, message string, metadata map[string]any) Response {
	return Response{status: status, message: message, metadata: copyMetadata(metadata)}
}

// Status returns the outcome classification.
func (r Response) Status() Status { return r.status }

// Message returns the text shown to the user.
func (r Response) Message() string { return r.message }

// Metadata returns a copy of the metadata map, empty when none was set.
// Mutating the returned map does not affect r.
func (r Response) Metadata() map[string]any {
	if len(r.metadata) == 0 {
		return map[string]any{}
	}
	return copyMetadata(r.metadata)
}

// Meta returns a single metadata value and whether it was present.
func (r Response) Meta(key string) (any, bool) {
	v, ok := r.metadata[key]
	return v, ok
}

// Equal reports structural equality including metadata contents.
// go-cmp picks this up, so cmp.Diff on Responses works in tests.
func (r Response) Equal(o Response) bool {
	if r.status != o.status || r.message != o.message {
		return false
	}
	if len(r.metadata) != len(o.metadata) {
		return false
	}
	if len(r.metadata) == 0 {
		return true
	}
	return reflect.DeepEqual(r.metadata, o.metadata)
}

func (r Response) String() string {
	return fmt.Sprintf("Response(status=%s, message=%q, metadata=%v)", r.status, r.message, r.Metadata())
}

func copyMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
