package assistant

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokosena/tokosena/server/internal/model"
)

func TestBuildPromptOrder(t *testing.T) {
	history := []model.ConversationTurn{
		{Speaker: "user", Text: "do you have shoes?"},
		{Speaker: "assistant", Text: "Yes, we have running shoes."},
	}
	prompt := BuildPrompt("CATALOG BLOCK", history, "what colors?", DefaultHistoryWindow)

	personaIdx := strings.Index(prompt, "shopping assistant")
	catalogIdx := strings.Index(prompt, "CATALOG BLOCK")
	historyIdx := strings.Index(prompt, "Customer: do you have shoes?")
	messageIdx := strings.Index(prompt, "Customer: what colors?")

	require.NotEqual(t, -1, personaIdx)
	require.NotEqual(t, -1, catalogIdx)
	require.NotEqual(t, -1, historyIdx)
	require.NotEqual(t, -1, messageIdx)

	assert.Less(t, personaIdx, catalogIdx)
	assert.Less(t, catalogIdx, historyIdx)
	assert.Less(t, historyIdx, messageIdx)
	assert.True(t, strings.HasSuffix(prompt, "Assistant:"))
}

func TestBuildPromptKeepsOnlyTrailingWindow(t *testing.T) {
	var history []model.ConversationTurn
	for i := 0; i < 10; i++ {
		history = append(history, model.ConversationTurn{Speaker: "user", Text: fmt.Sprintf("turn-%d", i)})
	}

	prompt := BuildPrompt("ctx", history, "latest", 6)

	for i := 0; i < 4; i++ {
		assert.NotContains(t, prompt, fmt.Sprintf("turn-%d", i))
	}
	for i := 4; i < 10; i++ {
		assert.Contains(t, prompt, fmt.Sprintf("turn-%d", i))
	}
}

func TestBuildPromptSpeakerLabels(t *testing.T) {
	history := []model.ConversationTurn{
		{Speaker: "user", Text: "hi"},
		{Speaker: "assistant", Text: "hello"},
		{Speaker: "something-else", Text: "noise"},
	}
	prompt := BuildPrompt("ctx", history, "m", 6)

	assert.Contains(t, prompt, "Customer: hi")
	assert.Contains(t, prompt, "Assistant: hello")
	// unknown speakers default to the customer label
	assert.Contains(t, prompt, "Customer: noise")
}

func TestBuildPromptNoHistory(t *testing.T) {
	prompt := BuildPrompt("ctx", nil, "first message", 6)
	assert.NotContains(t, prompt, "Conversation so far")
	assert.Contains(t, prompt, "Customer: first message")
}
