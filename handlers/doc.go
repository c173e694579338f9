// Package handlers defines the query handler contracts and implementations.
//
// Includes:
//   - Response: the immutable result value every handler returns.
//   - Handler: the capability interface (CanHandle, Process).
//   - Fallback: marks the catch-all handler that must run last.
//   - Concrete handlers: git commit suggestions, terminal clearing, chat.
//   - Registry: the startup-time registration list the router orders.
package handlers
