package assistant

import (
	"strings"

	"github.com/tokosena/tokosena/server/internal/model"
)

// DefaultHistoryWindow is how many trailing conversation turns survive into
// the prompt. Older turns are dropped, not summarized.
const DefaultHistoryWindow = 6

const persona = `You are Sena, the shopping assistant for an online storefront.

Rules:
- Recommend and discuss only products listed in the catalog below. Never invent products, prices, or stock.
- Quote prices exactly as written in the catalog, including the currency label.
- When no product matches the customer's request, say so and offer the closest alternatives from the catalog.
- Keep answers short and friendly; a few sentences at most.`

// BuildPrompt assembles one completion prompt: persona, catalog context, the
// trailing window of prior turns, then the new message, in that fixed order.
func BuildPrompt(catalogBlock string, history []model.ConversationTurn, message string, window int) string {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}

	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\n\n")
	sb.WriteString(catalogBlock)
	sb.WriteString("\n")

	if len(history) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, turn := range history {
			sb.WriteString(speakerLabel(turn.Speaker))
			sb.WriteString(": ")
			sb.WriteString(turn.Text)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nCustomer: ")
	sb.WriteString(message)
	sb.WriteString("\nAssistant:")
	return sb.String()
}

func speakerLabel(speaker string) string {
	if speaker == "assistant" {
		return "Assistant"
	}
	return "Customer"
}
