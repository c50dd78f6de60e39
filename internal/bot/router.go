package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Handler processes one inbound message.
type Handler func(ctx context.Context, msg *tgbotapi.Message)

// Route pairs a message predicate with its handler.
type Route struct {
	Match  func(msg *tgbotapi.Message) bool
	Handle Handler
}

// Router dispatches messages over an ordered route list. Routes are
// evaluated in order and the first match wins; unmatched messages go
// to the fallback.
type Router struct {
	routes   []Route
	fallback Handler
}

// NewRouter creates a Router. fallback may be nil, in which case
// unmatched messages are dropped.
func NewRouter(routes []Route, fallback Handler) *Router {
	return &Router{routes: routes, fallback: fallback}
}

// Dispatch routes one message.
func (r *Router) Dispatch(ctx context.Context, msg *tgbotapi.Message) {
	for _, route := range r.routes {
		if route.Match(msg) {
			route.Handle(ctx, msg)
			return
		}
	}
	if r.fallback != nil {
		r.fallback(ctx, msg)
	}
}

// isCommand matches a bot command by name, e.g. /start or /help.
func isCommand(names ...string) func(*tgbotapi.Message) bool {
	return func(msg *tgbotapi.Message) bool {
		if !msg.IsCommand() {
			return false
		}
		for _, name := range names {
			if msg.Command() == name {
				return true
			}
		}
		return false
	}
}
