package generator

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Prompt is the message pair sent to the LLM.
type Prompt struct {
	System string
	User   string
}

// BuildInitialPrompt asks for a complete single-file index.html from scratch.
func BuildInitialPrompt(req Request) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an expert web developer creating single-file applications.\n")
	sb.WriteString("Based on the brief and attachments, create a complete `index.html` file.\n")
	sb.WriteString("The code must be production-ready and contain all HTML, CSS, and JavaScript.\n\n")
	sb.WriteString("BRIEF:\n")
	sb.WriteString(req.Brief)
	sb.WriteString("\n\nATTACHMENTS:\n")
	sb.WriteString(renderAttachments(req.Attachments))
	sb.WriteString("\n\nINSTRUCTIONS:\n")
	sb.WriteString("- Return ONLY the raw contents of the `index.html` file. No explanations, notes, or Markdown formatting.\n")
	sb.WriteString("- The HTML must be a valid, standalone file (include <!doctype html>, charset meta, responsive viewport, and any inline CSS/JS required).\n")

	return Prompt{
		System: "Output only raw file contents, never explanations or code fences.",
		User:   sb.String(),
	}
}

// BuildRevisionPrompt asks for the existing index.html to be modified to meet
// a new brief while keeping everything that already works.
func BuildRevisionPrompt(req Request) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an expert web developer who modifies and improves single-file web apps.\n")
	sb.WriteString("A user provided ORIGINAL CODE for `index.html` and a NEW BRIEF. Modify the ORIGINAL CODE\n")
	sb.WriteString("to implement the NEW BRIEF while preserving ALL existing functionality unless the brief\n")
	sb.WriteString("explicitly says to remove or replace it. Fix bugs, improve accessibility, and keep the\n")
	sb.WriteString("file production-ready (HTML/CSS/JS in one file).\n\n")
	sb.WriteString("--- ORIGINAL CODE (index.html) START ---\n")
	sb.WriteString(req.ExistingCode)
	sb.WriteString("\n--- ORIGINAL CODE (index.html) END ---\n\n")
	sb.WriteString("BRIEF:\n")
	sb.WriteString(req.Brief)
	sb.WriteString("\n\nATTACHMENTS:\n")
	sb.WriteString(renderAttachments(req.Attachments))
	sb.WriteString("\n\nINSTRUCTIONS:\n")
	sb.WriteString("- Return ONLY the raw contents of the updated `index.html` file. No surrounding explanation, Markdown, or code fences.\n")
	sb.WriteString("- The returned HTML must be a valid, standalone single-file web page.\n")
	sb.WriteString("- Keep backward compatibility; do not remove previously working features.\n")

	return Prompt{
		System: "Output only raw file contents, never explanations or code fences.",
		User:   sb.String(),
	}
}

// renderAttachments expands data: URLs into prompt text. Text-like base64
// payloads are decoded inline; binary or unparsable ones are described.
func renderAttachments(atts []Attachment) string {
	if len(atts) == 0 {
		return "No attachments provided."
	}

	parts := make([]string, 0, len(atts))
	for _, att := range atts {
		name := att.Name
		if name == "" {
			name = "unnamed"
		}

		header, encoded, ok := strings.Cut(att.URL, ",")
		if !ok {
			parts = append(parts, fmt.Sprintf("File name: %s\nFile content:\n[Attachment present but could not be parsed (%s).]", name, name))
			continue
		}

		headerLower := strings.ToLower(header)
		textLike := false
		for _, tok := range []string{"text", "json", "csv", "xml", "javascript", "html"} {
			if strings.Contains(headerLower, tok) {
				textLike = true
				break
			}
		}

		if !textLike || !strings.Contains(headerLower, "base64") {
			parts = append(parts, fmt.Sprintf("File name: %s\nFile content:\n[Content of binary or non-text file (%s) is attached but not displayed here.]", name, name))
			continue
		}

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil || !utf8.Valid(decoded) {
			parts = append(parts, fmt.Sprintf("File name: %s\nFile content:\n[Attachment could not be decoded as text (%s).]", name, name))
			continue
		}
		parts = append(parts, fmt.Sprintf("File name: %s\nFile content:\n```\n%s\n```", name, decoded))
	}

	return strings.Join(parts, "\n\n")
}
