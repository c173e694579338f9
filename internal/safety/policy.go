// Package safety constrains which subprocesses the assistant may spawn.
package safety

import (
	"encoding/json"
	"slices"
)

// PolicyError is a machine-readable error body for command policy violations.
type PolicyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string so failures stay machine-readable in logs.
func (e PolicyError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// allowedCommands is the full set of subprocess invocations the assistant may
// perform. Each command name maps to its permitted argument vectors; anything
// else is refused before exec is ever reached.
var allowedCommands = map[string][][]string{
	"git":   {{"diff", "--staged"}},
	"clear": {{}},
	"cmd":   {{"/c", "cls"}},
}

// ValidateCommand checks name and args against the allowlist.
// On violation it returns a PolicyError with a stable code.
func ValidateCommand(name string, args []string) error {
	forms, ok := allowedCommands[name]
	if !ok {
		return PolicyError{Code: "ERR_CMD_NOT_ALLOWED", Message: "command is not on the allowlist: " + name}
	}
	for _, form := range forms {
		if slices.Equal(args, form) {
			return nil
		}
	}
	return PolicyError{Code: "ERR_ARGS_NOT_ALLOWED", Message: "argument form is not on the allowlist for: " + name}
}
