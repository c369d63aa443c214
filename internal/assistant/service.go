// Package assistant implements the retrieval-augmented chat flow: it flattens
// the product catalog into a prompt context block, trims the conversation
// history to a fixed window, and delegates the completion to a hosted
// generative-language model.
package assistant

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tokosena/tokosena/server/internal/model"
)

// FallbackMessage is the only failure text chat users ever see. Raw backend
// errors go to the log, never into the conversation.
const FallbackMessage = "Sorry, I couldn't answer that right now. Please try again in a moment, or browse the catalog while I recover."

// Service is the chat entry point used by handlers and the CLI.
type Service struct {
	gen     Generator
	context *ContextBuilder
	log     zerolog.Logger
	window  int
}

// NewService wires a generator to a context builder.
func NewService(gen Generator, ctxb *ContextBuilder, log zerolog.Logger, historyWindow int) *Service {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &Service{gen: gen, context: ctxb, log: log, window: historyWindow}
}

// GenerateResponse answers one chat turn. Any model failure is converted to
// FallbackMessage. No retry happens here; the user re-submits if they want
// another attempt.
func (s *Service) GenerateResponse(ctx context.Context, message string, history []model.ConversationTurn) string {
	prompt := BuildPrompt(s.context.Context(ctx), history, message, s.window)

	out, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		s.log.Error().Err(err).Int("history_turns", len(history)).Msg("assistant completion failed")
		return FallbackMessage
	}
	return out
}

// RefreshContext unconditionally refetches the catalog snapshot. Exposed so
// the UI can prime the cache when the chat panel opens and force a refresh
// after catalog updates.
func (s *Service) RefreshContext(ctx context.Context) error {
	return s.context.Refresh(ctx)
}
