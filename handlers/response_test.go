package handlers_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/petasbytes/orpheus/handlers"
)

func TestResponse_NewDefaults(t *testing.T) {
	r := handlers.New(handlers.StatusSuccess, "done")
	if r.Status() != handlers.StatusSuccess {
		t.Errorf("expected status success, got %s", r.Status())
	}
	if r.Message() != "done" {
		t.Errorf("expected message 'done', got %q", r.Message())
	}
	md := r.Metadata()
	if md == nil {
		t.Fatal("expected non-nil metadata map")
	}
	if len(md) != 0 {
		t.Errorf("expected empty metadata, got %v", md)
	}
}

func TestResponse_MetadataCopiedIn(t *testing.T) {
	in := map[string]any{"model": "gemini-2.5-pro"}
	r := handlers.NewWithMetadata(handlers.StatusSuccess, "ok", in)

	// Mutating the caller's map after construction must not leak in.
	in["model"] = "changed"
	in["extra"] = true

	got := r.Metadata()
	if got["model"] != "gemini-2.5-pro" {
		t.Errorf("expected model=gemini-2.5-pro, got %v", got["model"])
	}
	if _, ok := got["extra"]; ok {
		t.Error("mutation of the input map leaked into the response")
	}
}

func TestResponse_MetadataCopiedOut(t *testing.T) {
	r := handlers.NewWithMetadata(handlers.StatusFailed, "nope", map[string]any{"attempts": 3})

	first := r.Metadata()
	first["attempts"] = 99
	first["injected"] = "x"

	second := r.Metadata()
	if second["attempts"] != 3 {
		t.Errorf("expected attempts=3 on re-read, got %v", second["attempts"])
	}
	if _, ok := second["injected"]; ok {
		t.Error("mutation of a returned map leaked into the response")
	}
}

func TestResponse_Meta(t *testing.T) {
	r := handlers.NewWithMetadata(handlers.StatusSuccess, "ok", map[string]any{"format": "markdown"})
	if v, ok := r.Meta("format"); !ok || v != "markdown" {
		t.Errorf("expected format=markdown present, got %v ok=%t", v, ok)
	}
	if _, ok := r.Meta("missing"); ok {
		t.Error("expected missing key to report ok=false")
	}
}

func TestResponse_Equal(t *testing.T) {
	cases := []struct {
		name string
		a, b handlers.Response
		want bool
	}{
		{
			name: "SameNoMetadata",
			a:    handlers.New(handlers.StatusSuccess, "hi"),
			b:    handlers.New(handlers.StatusSuccess, "hi"),
			want: true,
		},
		{
			name: "NilVsEmptyMetadata",
			a:    handlers.New(handlers.StatusSuccess, "hi"),
			b:    handlers.NewWithMetadata(handlers.StatusSuccess, "hi", map[string]any{}),
			want: true,
		},
		{
			name: "SameMetadata",
			a:    handlers.NewWithMetadata(handlers.StatusSuccess, "hi", map[string]any{"n": 1}),
			b:    handlers.NewWithMetadata(handlers.StatusSuccess, "hi", map[string]any{"n": 1}),
			want: true,
		},
		{
			name: "DifferentStatus",
			a:    handlers.New(handlers.StatusSuccess, "hi"),
			b:    handlers.New(handlers.StatusFailed, "hi"),
			want: false,
		},
		{
			name: "DifferentMessage",
			a:    handlers.New(handlers.StatusSuccess, "hi"),
			b:    handlers.New(handlers.StatusSuccess, "bye"),
			want: false,
		},
		{
			name: "DifferentMetadataValue",
			a:    handlers.NewWithMetadata(handlers.StatusSuccess, "hi", map[string]any{"n": 1}),
			b:    handlers.NewWithMetadata(handlers.StatusSuccess, "hi", map[string]any{"n": 2}),
			want: false,
		},
		{
			name: "ExtraMetadataKey",
			a:    handlers.NewWithMetadata(handlers.StatusSuccess, "hi", map[string]any{"n": 1}),
			b:    handlers.NewWithMetadata(handlers.StatusSuccess, "hi", map[string]any{"n": 1, "m": 2}),
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Fatalf("Equal=%t, want %t\na=%v\nb=%v", got, tc.want, tc.a, tc.b)
			}
			// Equality is symmetric.
			if got := tc.b.Equal(tc.a); got != tc.want {
				t.Fatalf("Equal not symmetric: %t vs want %t", got, tc.want)
			}
		})
	}
}

func TestResponse_CmpDiffUsesEqual(t *testing.T) {
	a := handlers.NewWithMetadata(handlers.StatusSuccess, "hi", map[string]any{"n": 1})
	b := handlers.NewWithMetadata(handlers.StatusSuccess, "hi", map[string]any{"n": 1})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("unexpected diff between equal responses (-want +got):\n%s", diff)
	}
}
