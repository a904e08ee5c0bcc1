package generator

import (
	"context"
	"errors"
)

// Agent produces the publishable file bundle for one pass of a task.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Generate picks the initial or revision prompt depending on whether prior
// code exists, then post-processes the raw model output.
func (a *Agent) Generate(ctx context.Context, req Request) (Bundle, error) {
	var prompt Prompt
	if req.ExistingCode == "" {
		prompt = BuildInitialPrompt(req)
	} else {
		prompt = BuildRevisionPrompt(req)
	}

	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return PostProcess(raw, req.Brief)
}
