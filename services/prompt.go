package services

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"github.com/harivittal/bgai/models"
)

// FallbackAnswer is returned when no stored verse clears the similarity
// threshold. It is a successful response, not an error, and the generative
// model is never consulted for it.
const FallbackAnswer = "I could not find a relevant passage in the Bhagavad Gita to answer this question. Please try rephrasing it."

// answerPrompt restricts the model to the retrieved verses. Keeping the
// instruction, context and question in one template makes the grounding
// contract explicit and testable.
var answerPrompt = prompts.NewPromptTemplate(
	`You are a wise and compassionate teacher of the Bhagavad Gita. Answer the question using ONLY the verses provided below. Do not draw on any other knowledge. If the verses do not contain the answer, say so plainly. Respond in a calm, encouraging tone, as a teacher guiding a student.

Verses:
{{.context}}

Question: {{.question}}

Answer:`,
	[]string{"context", "question"},
)

// buildPrompt assembles the grounded prompt from the retrieved verses, in the
// order the search returned them, and the verbatim question.
func buildPrompt(verses []models.ScoredVerse, question string) (string, error) {
	var context strings.Builder
	for i, verse := range verses {
		if i > 0 {
			context.WriteString("\n\n")
		}
		context.WriteString(fmt.Sprintf("Verse %d: %s", i+1, verse.Content))
	}

	prompt, err := answerPrompt.Format(map[string]any{
		"context":  context.String(),
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("failed to format answer prompt: %w", err)
	}
	return prompt, nil
}
