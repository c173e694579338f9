package provider

// GeminiRequest is the generateContent request body.
type GeminiRequest struct {
	Contents         []GeminiContent        `json:"contents"`
	GenerationConfig GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

// GeminiContent is one conversational turn. Role stays empty for the
// single-turn requests this client sends.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart is a text fragment within a content turn.
type GeminiPart struct {
	Text string `json:"text,omitempty"`
}

// GeminiGenerationConfig tunes the completion. ResponseMimeType and
// ResponseSchema are set only for structured-output queries.
type GeminiGenerationConfig struct {
	Temperature      float64        `json:"temperature,omitempty"`
	MaxOutputTokens  int            `json:"maxOutputTokens,omitempty"`
	ResponseMimeType string         `json:"response_mime_type,omitempty"`
	ResponseSchema   map[string]any `json:"response_schema,omitempty"`
}
