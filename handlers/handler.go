package handlers

import (
	"context"
	"fmt"
	"strings"
)

// Handler is the capability interface every query handler implements.
type Handler interface {
	// CanHandle reports whether the handler claims the query. It must be
	// side-effect free, return quickly, and tolerate any input, including
	// empty or whitespace-only text, without panicking.
	CanHandle(query string) bool

	// Process performs the handler's action for a query it claimed in the
	// same routing cycle. Internal failures are converted to a failed
	// Response, never propagated.
	Process(ctx context.Context, query string) Response
}

// Fallback marks the catch-all handler. The router keeps it at the end of
// the chain so every specialised handler gets first refusal.
type Fallback interface {
	Fallback() bool
}

// TextGenerator is the slice of the Gemini client the handlers depend on.
type TextGenerator interface {
	Query(ctx context.Context, prompt string) (string, error)
	QueryWithSchema(ctx context.Context, prompt string, schema map[string]any) (string, error)
}

// CommandRunner executes an allowlisted subprocess. Output captures stdout
// (git diff); Run inherits the terminal (screen clearing).
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) (string, error)
	Run(ctx context.Context, name string, args ...string) error
}

// Name returns a handler's identity for ordering and logging: the
// implementing type's name without pointer marker or package qualifier.
func Name(h Handler) string {
	s := strings.TrimPrefix(fmt.Sprintf("%T", h), "*")
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return s
}
