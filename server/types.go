package server

import "llm_site_deployer/generator"

// DeployRequest is the POST /api-endpoint payload. All fields are required;
// attachments are optional data: URLs forwarded to the generator.
type DeployRequest struct {
	Email         string                 `json:"email" binding:"required"`
	Secret        string                 `json:"secret" binding:"required"`
	Task          string                 `json:"task" binding:"required"`
	Round         int                    `json:"round" binding:"required,min=1"`
	Nonce         string                 `json:"nonce" binding:"required"`
	Brief         string                 `json:"brief" binding:"required"`
	EvaluationURL string                 `json:"evaluation_url" binding:"required,url"`
	Attachments   []generator.Attachment `json:"attachments,omitempty"`
}

// DeployResponse is returned on success. Task, round, and nonce are echoed
// unchanged for correlation.
type DeployResponse struct {
	Status     string `json:"status"`
	DeliveryID string `json:"delivery_id"`
	Task       string `json:"task"`
	Round      int    `json:"round"`
	Nonce      string `json:"nonce"`
	RepoURL    string `json:"repo_url"`
	CommitSHA  string `json:"commit_sha"`
	PagesURL   string `json:"pages_url"`
}

// ErrorResponse carries the taxonomy kind and a human-readable message.
type ErrorResponse struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Task    string `json:"task,omitempty"`
	Nonce   string `json:"nonce,omitempty"`
}
