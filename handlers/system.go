package handlers

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// SystemHandler executes small terminal commands, currently screen clearing.
type SystemHandler struct {
	runner CommandRunner
	logger *zap.Logger
}

// NewSystemHandler builds the system-command handler.
func NewSystemHandler(runner CommandRunner, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{runner: runner, logger: logger}
}

// CanHandle claims the clear-screen keywords on both Windows ("cls") and
// Unix ("clear"), case-insensitively.
func (h *SystemHandler) CanHandle(query string) bool {
	switch strings.ToLower(strings.TrimSpace(query)) {
	case "cls", "clear":
		return true
	}
	return false
}

// Process clears the terminal with the platform command. The command draws
// straight to the terminal, so it runs with inherited stdio rather than
// captured output.
func (h *SystemHandler) Process(ctx context.Context, query string) Response {
	h.logger.Debug("system handler activated")

	name, args := clearCommand(runtime.GOOS)
	if err := h.runner.Run(ctx, name, args...); err != nil {
		return New(StatusFailed, fmt.Sprintf("Error clearing the terminal screen: %v", err))
	}
	return New(StatusSuccess, "🎶 Terminal screen has been cleared.")
}

func clearCommand(goos string) (string, []string) {
	if goos == "windows" {
		return "cmd", []string{"/c", "cls"}
	}
	return "clear", nil
}
