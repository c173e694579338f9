package telemetry

import (
	"os"
)

var (
	observeEnabled         bool
	persistPayloadsEnabled bool
)

func init() {
	// Read once at process start. Mid-run environment changes have no effect.
	observeEnabled = os.Getenv("ORPHEUS_OBSERVE_JSON") == "1"

	// Payload persistence is opt-in on its own: payload files carry raw
	// prompts and completions, so observe alone never implies it.
	persistPayloadsEnabled = os.Getenv("ORPHEUS_PERSIST_API_PAYLOADS") == "1"
}

// ObserveEnabled reports whether JSONL emission was enabled at startup.
func ObserveEnabled() bool {
	// Preserve startup-evaluated default, but allow tests to enable mid-run via env override.
	if os.Getenv("ORPHEUS_OBSERVE_JSON") == "1" {
		return true
	}
	return observeEnabled
}

// PersistPayloadsEnabled reports whether request and response payload persistence was enabled at startup.
func PersistPayloadsEnabled() bool {
	// Preserve startup-evaluated default, but allow tests to enable mid-run via env override.
	if os.Getenv("ORPHEUS_PERSIST_API_PAYLOADS") == "1" {
		return true
	}
	return persistPayloadsEnabled
}
