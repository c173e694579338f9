package handlers

import "go.uber.org/zap"

// Deps carries the collaborators shared by the concrete handlers.
type Deps struct {
	Generator  TextGenerator
	Runner     CommandRunner
	Logger     *zap.Logger
	Model      string
	DiffBudget int
}

// Registry is the startup-time registration list: every handler the
// assistant ships with, constructed once and reused for all queries.
// Order here is irrelevant; the router sorts the chain by handler name and
// keeps the fallback last.
func Registry(d Deps) []Handler {
	return []Handler{
		NewChatHandler(d.Generator, d.Model, d.Logger),
		NewGitHandler(d.Generator, d.Runner, d.Model, d.DiffBudget, d.Logger),
		NewSystemHandler(d.Runner, d.Logger),
	}
}
