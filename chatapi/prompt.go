package chatapi

import "fmt"

// modelPrompt assembles the upstream prompt. The initial round trip passes
// the briefing through untouched; follow-up round trips append the progress
// block naming the current field, the user's literal answer and whether the
// field is the last one.
func modelPrompt(req *ChatRequest) string {
	if req.UserMessage == "" || req.Context == nil {
		return req.Prompt
	}
	ctx := req.Context
	if ctx.CurrentFieldIndex < 0 || ctx.CurrentFieldIndex >= len(ctx.FormFields) {
		return req.Prompt
	}
	currentField := ctx.FormFields[ctx.CurrentFieldIndex]
	isLast := ctx.CurrentFieldIndex == ctx.TotalFields-1

	action := "pergunte sobre o próximo campo"
	if isLast {
		action = "parabenize e mencione envio"
	}

	return fmt.Sprintf(`%s

CONTEXTO: Campo %d/%d: %s
RESPOSTA: "%s"
ÚLTIMO: %t

AÇÃO: Analise a resposta. Se válida, %s. Se incompleta, peça esclarecimento.`,
		req.Prompt,
		ctx.CurrentFieldIndex+1,
		ctx.TotalFields,
		currentField.Label,
		req.UserMessage,
		isLast,
		action,
	)
}
