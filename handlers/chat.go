package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// chatPersona primes the model with the assistant's identity and tone before
// every conversational query.
const chatPersona = "You are Orpheus, a wise and articulate AI assistant to a user you refer to as 'the Architect'.\n" +
	"You currently operate through a Command-Line Interface (CLI).\n" +
	"Your purpose is to be a foundational part of the Architect's 'Argus' ecosystem, acting as an intelligent development partner.\n" +
	"Your core intelligence is powered by Google's Gemini model, which you access securely via an API key.\n" +
	"Your current capabilities are provided by your 'handlers':\n" +
	"- GitHandler: To analyze code changes and suggest professional commit messages.\n" +
	"- SystemHandler: To execute simple system commands, like clearing the terminal screen.\n" +
	"- ChatHandler (this is you): To answer general questions and provide information.\n" +
	"Your tone is knowledgeable, precise, and slightly philosophical, often using musical metaphors. You are a partner in creation.\n" +
	"Now, answer the Architect's following query:\n\n"

// ChatHandler answers general questions in the Orpheus persona. It is the
// designated fallback: it claims every query, so the router keeps it at the
// end of the chain where the specialised handlers get first refusal.
type ChatHandler struct {
	gen    TextGenerator
	model  string
	logger *zap.Logger
}

// NewChatHandler builds the conversational fallback handler. A nil logger
// disables logging.
func NewChatHandler(gen TextGenerator, model string, logger *zap.Logger) *ChatHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatHandler{gen: gen, model: model, logger: logger}
}

// CanHandle claims every query.
func (h *ChatHandler) CanHandle(string) bool { return true }

// Fallback marks this handler for the final chain position.
func (h *ChatHandler) Fallback() bool { return true }

// Process wraps the query in the persona prompt and returns the model's
// answer. The answer is flagged as markdown so the renderer can style it.
func (h *ChatHandler) Process(ctx context.Context, query string) Response {
	h.logger.Debug("chat handler activated")

	prompt := fmt.Sprintf("%sArchitect: \"%s\"", chatPersona, query)
	answer, err := h.gen.Query(ctx, prompt)
	if err != nil {
		return New(StatusFailed, err.Error())
	}
	return NewWithMetadata(StatusSuccess, fmt.Sprintf("\n🎶 Orpheus:\n%s\n", answer), map[string]any{
		"model":  h.model,
		"format": "markdown",
	})
}
