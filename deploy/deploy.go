// Package deploy runs the fixed pipeline behind the deployment endpoint:
// generate code, publish it to a repository, trigger the Pages site, then
// notify the evaluation URL in the background.
package deploy

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"llm_site_deployer/generator"
	"llm_site_deployer/publisher"
)

// Request is a validated, authorized deployment request.
type Request struct {
	Email         string
	Task          string
	Round         int
	Nonce         string
	Brief         string
	EvaluationURL string
	Attachments   []generator.Attachment
}

// Result is returned to the caller and posted to the evaluation URL.
type Result struct {
	DeliveryID string
	Task       string
	Round      int
	Nonce      string
	RepoURL    string
	CommitSHA  string
	PagesURL   string
}

// Generator produces the site files for one pass.
type Generator interface {
	Generate(ctx context.Context, req generator.Request) (generator.Bundle, error)
}

// Host is the source-hosting side of the pipeline.
type Host interface {
	EnsureRepo(ctx context.Context, name, description string) (created bool, err error)
	PushFiles(ctx context.Context, repo string, files map[string]string, message string) (publisher.PushResult, error)
	EnablePages(ctx context.Context, repo string) error
	FetchFile(ctx context.Context, repo, path string) (string, error)
	PagesURL(repo string) string
}

// Deployer orchestrates one request end to end. Steps run sequentially and
// the first failure aborts the rest; nothing is retried or cleaned up.
type Deployer struct {
	gen      Generator
	host     Host
	notifier *Notifier
	logger   *log.Logger
}

func New(gen Generator, host Host, notifier *Notifier, logger *log.Logger) (*Deployer, error) {
	if gen == nil || host == nil {
		return nil, fmt.Errorf("generator and host are required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Deployer{gen: gen, host: host, notifier: notifier, logger: logger}, nil
}

// Run executes generate → publish → enable pages and assembles the result.
func (d *Deployer) Run(ctx context.Context, req Request) (Result, error) {
	repo := publisher.RepoName(req.Task, req.Email)
	d.logger.Printf("processing task %q round %d -> repo %s", req.Task, req.Round, repo)

	// Rounds after the first revise the previously deployed page. A missing
	// repo or file just means we generate from scratch.
	existing := ""
	if req.Round > 1 {
		prev, err := d.host.FetchFile(ctx, repo, "index.html")
		if err != nil {
			d.logger.Printf("no prior code for round %d, generating from scratch: %v", req.Round, err)
		} else {
			existing = prev
			d.logger.Printf("found prior index.html (%d bytes) to revise", len(prev))
		}
	}

	bundle, err := d.gen.Generate(ctx, generator.Request{
		Brief:        req.Brief,
		Attachments:  req.Attachments,
		ExistingCode: existing,
	})
	if err != nil {
		return Result{}, fail(KindGeneration, err)
	}

	if _, err := d.host.EnsureRepo(ctx, repo, fmt.Sprintf("Auto-generated app for task %s", req.Task)); err != nil {
		return Result{}, fail(KindPublication, err)
	}

	push, err := d.host.PushFiles(ctx, repo, bundle, fmt.Sprintf("feat: round %d update", req.Round))
	if err != nil {
		return Result{}, fail(KindPublication, err)
	}

	if err := d.host.EnablePages(ctx, repo); err != nil {
		return Result{}, fail(KindDeployment, err)
	}

	res := Result{
		DeliveryID: uuid.New().String(),
		Task:       req.Task,
		Round:      req.Round,
		Nonce:      req.Nonce,
		RepoURL:    push.RepoURL,
		CommitSHA:  push.CommitSHA,
		PagesURL:   d.host.PagesURL(repo),
	}
	d.logger.Printf("task %q round %d deployed: %s (commit %s)", req.Task, req.Round, res.PagesURL, res.CommitSHA)

	// Notification is best-effort and must not delay the response; Pages
	// needs time to build before the evaluator can see the site anyway.
	if d.notifier != nil && req.EvaluationURL != "" {
		go func() {
			if err := d.notifier.Notify(context.Background(), req, res); err != nil {
				d.logger.Printf("evaluation notify failed for task %q: %v", req.Task, err)
			}
		}()
	}

	return res, nil
}
