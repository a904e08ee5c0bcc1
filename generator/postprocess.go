package generator

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
)

// PostProcess turns raw model output into the file bundle to publish.
// Models occasionally wrap the file in code fences or answer in Markdown
// despite instructions; both are repaired here rather than rejected.
func PostProcess(raw string, brief string) (Bundle, error) {
	code := stripFences(strings.TrimSpace(raw))
	if code == "" {
		return nil, errors.New("model returned empty output")
	}

	if !looksLikeHTML(code) {
		page, err := renderMarkdownPage(code, brief)
		if err != nil {
			return nil, fmt.Errorf("render markdown fallback: %w", err)
		}
		code = page
	}

	return Bundle{
		"index.html": code,
		"README.md":  buildReadme(brief),
		"LICENSE":    mitLicense,
	}, nil
}

// stripFences removes a surrounding ``` block if the whole output is fenced.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	lines = lines[1:]
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func looksLikeHTML(s string) bool {
	head := strings.ToLower(s)
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") || strings.Contains(head, "<html")
}

// renderMarkdownPage wraps Markdown output into a standalone HTML page so the
// published site is still viewable.
func renderMarkdownPage(md string, brief string) (string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("  <meta charset=\"utf-8\">\n")
	sb.WriteString("  <meta name=\"viewport\" content=\"width=device-width,initial-scale=1\">\n")
	sb.WriteString("  <title>")
	sb.WriteString(html.EscapeString(truncate(brief, 60)))
	sb.WriteString("</title>\n</head>\n<body>\n")
	sb.Write(body.Bytes())
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

func buildReadme(brief string) string {
	var sb strings.Builder
	sb.WriteString("# Project: ")
	sb.WriteString(truncate(brief, 50))
	sb.WriteString("\n\n## Summary\n")
	sb.WriteString(fmt.Sprintf("This project was automatically generated to solve the task: %q.\n\n", brief))
	sb.WriteString("## How to use\n")
	sb.WriteString("Open `index.html` in a browser to view the single-file application.\n\n")
	sb.WriteString("## License\n")
	sb.WriteString("This project is licensed under the MIT License. See the LICENSE file for details.\n")
	return sb.String()
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

const mitLicense = `MIT License

Permission is hereby granted, free of charge, to any person obtaining a copy of this software and associated documentation files (the "Software"), to deal in the Software without restriction, including without limitation the rights to use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the Software, and to permit persons to whom the Software is furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
`
