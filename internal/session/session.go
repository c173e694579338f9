// Package session runs the interactive read-eval loop: it reads the
// Architect's queries, routes them, and renders each Response for the
// terminal.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petasbytes/orpheus/handlers"
	"github.com/petasbytes/orpheus/internal/telemetry"
)

// QueryRouter is the slice of the router the session depends on.
type QueryRouter interface {
	Route(ctx context.Context, query string) handlers.Response
	Order() []string
}

// Session owns one interactive run. Queries are processed strictly one at a
// time; a blocking handler blocks the loop.
type Session struct {
	router QueryRouter
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
	md     *glamour.TermRenderer
}

// Option configures a Session.
type Option func(*Session)

// WithIO replaces the terminal streams, primarily for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Session) {
		s.in = in
		s.out = out
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMarkdown renders markdown-flagged answers through glamour. Without it
// answers print as plain text.
func WithMarkdown() Option {
	return func(s *Session) {
		s.md, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
	}
}

// New builds a session reading stdin and writing stdout unless overridden.
func New(r QueryRouter, opts ...Option) *Session {
	s := &Session{router: r, in: os.Stdin, out: os.Stdout, logger: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run blocks until the Architect exits, input ends, the context is
// cancelled, or an interrupt arrives. An interrupt during the input wait
// ends the session gracefully; it does not abort an in-flight handler.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		select {
		case <-sigch:
			fmt.Fprintln(s.out, "\nSession interrupted by user. Shutting down.")
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Fprintf(s.out, "✅ Orpheus Core ready with %d loaded handlers.\n", len(s.router.Order()))
	fmt.Fprintln(s.out, "\n--- Interactive Session with Orpheus Started ---")
	fmt.Fprintln(s.out, "Type 'exit' or 'quit' to end the session.")

	// The reader goroutine owns the scanner outright; the scan error is
	// handed over on scanErr before inputCh closes, so the loop only reads
	// it once input has genuinely ended.
	scanner := bufio.NewScanner(s.in)
	inputCh := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		for scanner.Scan() {
			select {
			case inputCh <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(inputCh)
	}()

	var readErr error
outer:
	for {
		fmt.Fprint(s.out, promptStyle.Render("\nArchitect> "))
		var (
			query string
			ok    bool
		)
		select {
		case <-ctx.Done():
			break outer
		case query, ok = <-inputCh:
			if !ok {
				readErr = <-scanErr
				break outer
			}
		}

		if lower := strings.ToLower(query); lower == "exit" || lower == "quit" {
			fmt.Fprintln(s.out, "Ending session. See you next time, Architect.")
			break
		}
		if strings.TrimSpace(query) == "" {
			continue
		}

		s.handle(ctx, query)
	}

	if readErr != nil {
		return fmt.Errorf("read input: %w", readErr)
	}
	return nil
}

// handle runs one routing cycle. Any fault that still escapes the router is
// reported and swallowed so the loop keeps running.
func (s *Session) handle(ctx context.Context, query string) {
	defer func() {
		if v := recover(); v != nil {
			s.logger.Error("session iteration panicked", zap.Any("panic", v))
			fmt.Fprintf(s.out, "\nAn unexpected error occurred in the Core: %v\n", v)
		}
	}()

	queryID := uuid.NewString()
	qctx := telemetry.WithQueryID(ctx, queryID)
	s.logger.Debug("processing command",
		zap.String("query_id", queryID), zap.String("query", query))
	telemetry.EmitQueryFeatures(qctx, query)

	s.render(s.router.Route(qctx, query))
}
