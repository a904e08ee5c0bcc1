package generator

// Attachment is a named data: URL supplied alongside a deployment request.
// Text-like attachments are decoded into the prompt; binary ones are only
// described to the model.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Request describes one generation pass for a task.
type Request struct {
	Brief       string
	Attachments []Attachment
	// ExistingCode is the prior round's index.html, empty on a first pass.
	ExistingCode string
}

// Bundle maps repository paths to generated file contents.
type Bundle map[string]string
