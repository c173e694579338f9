package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// artifactsDir resolves where telemetry artifacts live: ORPHEUS_ARTIFACTS_DIR
// when set, otherwise .orpheus in the working directory.
func artifactsDir() string {
	if dir := os.Getenv("ORPHEUS_ARTIFACTS_DIR"); dir != "" {
		return dir
	}
	return ".orpheus"
}

// Emit writes a single JSON line to events.jsonl when ORPHEUS_OBSERVE_JSON=1.
// It augments fields with RFC3339Nano time and the event name.
func Emit(name string, fields map[string]any) {
	if !ObserveEnabled() {
		return
	}

	// Make a shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	dir := artifactsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", dir, err)
		return
	}

	path := filepath.Join(dir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
		return
	}
}

// PersistPayload writes raw API payload bytes under payloads/ when
// ORPHEUS_PERSIST_API_PAYLOADS=1. Kind names the payload ("request",
// "response"); filenames are timestamped so successive calls never collide.
func PersistPayload(kind string, data []byte) {
	if !PersistPayloadsEnabled() {
		return
	}

	dir := filepath.Join(artifactsDir(), "payloads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", dir, err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("%d_%s.json", time.Now().UTC().UnixNano(), kind))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
		return
	}
}
