package generator

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestBuildInitialPrompt(t *testing.T) {
	p := BuildInitialPrompt(Request{Brief: "make a clock"})
	if !strings.Contains(p.User, "make a clock") {
		t.Fatalf("brief missing from prompt: %q", p.User)
	}
	if !strings.Contains(p.User, "No attachments provided.") {
		t.Fatalf("attachment placeholder missing: %q", p.User)
	}
	if strings.Contains(p.User, "ORIGINAL CODE") {
		t.Fatal("initial prompt must not reference original code")
	}
}

func TestBuildRevisionPrompt(t *testing.T) {
	p := BuildRevisionPrompt(Request{
		Brief:        "add dark mode",
		ExistingCode: "<html>v1</html>",
	})
	if !strings.Contains(p.User, "<html>v1</html>") {
		t.Fatalf("existing code missing: %q", p.User)
	}
	if !strings.Contains(p.User, "ORIGINAL CODE") {
		t.Fatalf("revision framing missing: %q", p.User)
	}
	if !strings.Contains(p.User, "add dark mode") {
		t.Fatalf("brief missing: %q", p.User)
	}
}

func TestRenderAttachments(t *testing.T) {
	textURL := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("col1,col2"))

	cases := []struct {
		name string
		atts []Attachment
		want string
	}{
		{"none", nil, "No attachments provided."},
		{"text decoded", []Attachment{{Name: "data.csv", URL: textURL}}, "col1,col2"},
		{"binary described", []Attachment{{Name: "logo.png", URL: "data:image/png;base64,AAAA"}}, "binary or non-text file (logo.png)"},
		{"malformed url", []Attachment{{Name: "x", URL: "nonsense"}}, "could not be parsed"},
		{"bad base64", []Attachment{{Name: "y.txt", URL: "data:text/plain;base64,!!!"}}, "could not be decoded as text"},
		{"unnamed", []Attachment{{URL: "nonsense"}}, "unnamed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := renderAttachments(tc.atts)
			if !strings.Contains(got, tc.want) {
				t.Fatalf("want %q in %q", tc.want, got)
			}
		})
	}
}
