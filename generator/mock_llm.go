package generator

import (
	"context"
	"strings"
)

// MockLLM is a local placeholder implementation that never calls an external
// model. Useful for tests and dry runs.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("  <meta charset=\"utf-8\">\n")
	sb.WriteString("  <meta name=\"viewport\" content=\"width=device-width,initial-scale=1\">\n")
	sb.WriteString("  <title>Generated Project</title>\n</head>\n<body>\n")
	sb.WriteString("  <main><h1>Generated placeholder</h1></main>\n")
	sb.WriteString("  <!--\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n  -->\n</body>\n</html>\n")
	return sb.String(), nil
}
