package scribeai

import (
	"fmt"
	"strings"
)

// The prompt templates are natural-language instructions, not a structured
// protocol. They stay in Portuguese, the language of the original assistant.
const (
	promptPersona = "Você é o Scribe AI, assistente para preenchimento de formulários."

	promptRules = `REGRAS:
- Seja direto e amigável
- Uma pergunta por vez
- Se resposta incompleta, peça esclarecimento
- Se último campo completo, parabenize e mencione envio`
)

// InitialPrompt builds the opening briefing: persona, task, the full field
// enumeration, the behavioral rules, and the instruction to ask about the
// first field. Composition is pure and deterministic.
func InitialPrompt(fields []Field) string {
	return fmt.Sprintf(`%s

INÍCIO: Pergunte sobre "%s"`, promptBody(fields), fields[0].Label)
}

// FollowUpPrompt is the per-turn variant of the briefing: same persona, task,
// enumeration and rules, without the opening instruction. Progress travels
// separately in the TurnContext.
func FollowUpPrompt(fields []Field) string {
	return promptBody(fields)
}

func promptBody(fields []Field) string {
	return fmt.Sprintf(`%s

TAREFA: Ajudar a preencher formulário com %d campos.

CAMPOS: %s

%s`, promptPersona, len(fields), enumerateFields(fields), promptRules)
}

// enumerateFields renders the 1-indexed field list in discovery order,
// e.g. "1. Nome, 2. Email".
func enumerateFields(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for i, field := range fields {
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, field.Label))
	}
	return strings.Join(parts, ", ")
}
