package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/petasbytes/orpheus/internal/windowing"
)

// CommitMessage is the structured reply requested from the model for commit
// suggestions. The descriptions steer generation through response_schema.
type CommitMessage struct {
	Subject string `json:"subject" jsonschema_description:"Conventional Commits subject: <type>(<scope>): <subject>, lowercase, no trailing period"`
	Body    string `json:"body,omitempty" jsonschema_description:"Optional body explaining the why and how of the change"`
	Footer  string `json:"footer,omitempty" jsonschema_description:"Optional footer for referencing issues, e.g. Closes #123"`
}

var commitSchema = GenerateSchema[CommitMessage]()

// commitRules is the instruction block sent with every staged diff.
const commitRules = `As Orpheus, an expert software engineering assistant, your task is to generate a precise and complete commit message based on the provided 'git diff'.

RULES:
1. Strictly follow the "Conventional Commits" standard.
2. The final output must be only the commit message itself.
3. The message must have the following structure:
   <type>(<scope>): <subject>
   <blank line>
   [optional body: explain the 'why' and 'how' of the change in more detail.]
   <blank line>
   [optional footer: for referencing issues, e.g., 'Closes #123'.]
4. The subject line must be in lowercase and not end with a period.
5. The message must focus on the *intent* of the change.

Based on the following diff, generate the complete commit message:
---
%s
---
`

const commitFrame = "--------------------------------------"

// GitHandler suggests commit messages for staged changes. It captures
// `git diff --staged`, clamps it to the prompt budget, and asks the model
// for a Conventional-Commits message through the structured-output path.
type GitHandler struct {
	gen        TextGenerator
	runner     CommandRunner
	model      string
	diffBudget int
	logger     *zap.Logger
}

// NewGitHandler builds the commit-suggestion handler. diffBudget bounds the
// diff text in runes; zero or negative disables clamping.
func NewGitHandler(gen TextGenerator, runner CommandRunner, model string, diffBudget int, logger *zap.Logger) *GitHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitHandler{gen: gen, runner: runner, model: model, diffBudget: diffBudget, logger: logger}
}

// CanHandle listens for the commit-suggestion keyword.
func (h *GitHandler) CanHandle(query string) bool {
	return strings.Contains(strings.ToLower(query), "commit msg")
}

// Process captures the staged diff and returns the framed suggestion.
func (h *GitHandler) Process(ctx context.Context, query string) Response {
	h.logger.Debug("git handler activated")

	diff, err := h.runner.Output(ctx, "git", "diff", "--staged")
	if err != nil {
		return New(StatusFailed, gitDiffError(err))
	}
	if diff == "" {
		return New(StatusFailed, "There are no changes staged. Use 'git add <file>' first.")
	}

	windowed, stats := windowing.PrepareDiff(diff, h.diffBudget)
	h.logger.Debug("querying for commit suggestion",
		zap.Int("diff_runes", stats.TotalRunes),
		zap.Bool("truncated", stats.Truncated))

	raw, err := h.gen.QueryWithSchema(ctx, fmt.Sprintf(commitRules, windowed), commitSchema)
	if err != nil {
		return New(StatusFailed, err.Error())
	}

	msg := fmt.Sprintf("\n🎶 AI-Generated Commit Suggestion:\n\n%s\n%s\n%s\n",
		commitFrame, renderCommitMessage(raw), commitFrame)
	return NewWithMetadata(StatusSuccess, msg, map[string]any{
		"model":          h.model,
		"diff_runes":     stats.TotalRunes,
		"diff_truncated": stats.Truncated,
		"files_included": stats.IncludedFiles,
		"files_skipped":  stats.SkippedFiles,
	})
}

// gitDiffError maps a runner failure to the message shown to the user.
func gitDiffError(err error) string {
	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound):
		return "Command 'git' not found. This handler must be run inside a Git repository."
	case errors.As(err, &exitErr):
		return fmt.Sprintf("Error executing git diff: %s", exitErr.Stderr)
	default:
		return fmt.Sprintf("Error executing git diff: %v", err)
	}
}

// renderCommitMessage assembles the display form of a structured reply,
// falling back to the raw text when the model ignored the schema.
func renderCommitMessage(raw string) string {
	var cm CommitMessage
	if err := json.Unmarshal([]byte(raw), &cm); err != nil || cm.Subject == "" {
		return strings.TrimSpace(raw)
	}
	parts := []string{cm.Subject}
	if cm.Body != "" {
		parts = append(parts, cm.Body)
	}
	if cm.Footer != "" {
		parts = append(parts, cm.Footer)
	}
	return strings.Join(parts, "\n\n")
}
