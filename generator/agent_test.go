package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type captureLLM struct {
	prompt Prompt
	out    string
	err    error
}

func (c *captureLLM) Complete(_ context.Context, p Prompt) (string, error) {
	c.prompt = p
	return c.out, c.err
}

func TestNewAgentRequiresLLM(t *testing.T) {
	if _, err := NewAgent(nil); err == nil {
		t.Fatal("expected error for nil llm")
	}
}

func TestAgentGenerateWithMock(t *testing.T) {
	agent, err := NewAgent(MockLLM{})
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	bundle, err := agent.Generate(context.Background(), Request{Brief: "a counter"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, ok := bundle["index.html"]; !ok {
		t.Fatal("bundle missing index.html")
	}
	if !looksLikeHTML(bundle["index.html"]) {
		t.Fatalf("mock output is not html: %q", bundle["index.html"])
	}
}

func TestAgentPicksRevisionPrompt(t *testing.T) {
	llm := &captureLLM{out: "<html>v2</html>"}
	agent, _ := NewAgent(llm)

	if _, err := agent.Generate(context.Background(), Request{Brief: "b"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(llm.prompt.User, "ORIGINAL CODE") {
		t.Fatal("first pass used revision prompt")
	}

	if _, err := agent.Generate(context.Background(), Request{Brief: "b", ExistingCode: "<html>v1</html>"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(llm.prompt.User, "ORIGINAL CODE") {
		t.Fatal("revision pass used initial prompt")
	}
}

func TestAgentPropagatesLLMError(t *testing.T) {
	llm := &captureLLM{err: errors.New("model unavailable")}
	agent, _ := NewAgent(llm)
	if _, err := agent.Generate(context.Background(), Request{Brief: "b"}); err == nil {
		t.Fatal("expected error")
	}
}
