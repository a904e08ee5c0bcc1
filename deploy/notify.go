package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"llm_site_deployer/metrics"
)

// Notifier posts the deployment result to the caller-supplied evaluation
// URL. It waits for the Pages build to warm up, then retries with
// exponential backoff. Failures are counted and logged, never surfaced to
// the original HTTP response.
type Notifier struct {
	client   *http.Client
	warmup   time.Duration
	backoff  time.Duration
	attempts int
	logger   *log.Logger
}

func NewNotifier(warmup time.Duration, attempts int, client *http.Client, logger *log.Logger) *Notifier {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if attempts <= 0 {
		attempts = 5
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{
		client:   client,
		warmup:   warmup,
		backoff:  time.Second,
		attempts: attempts,
		logger:   logger,
	}
}

type notification struct {
	Email     string `json:"email"`
	Task      string `json:"task"`
	Round     int    `json:"round"`
	Nonce     string `json:"nonce"`
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
}

// Notify delivers the result payload, sleeping warmup first and backing off
// 1s, 2s, 4s, ... between attempts.
func (n *Notifier) Notify(ctx context.Context, req Request, res Result) error {
	body, err := json.Marshal(notification{
		Email:     req.Email,
		Task:      req.Task,
		Round:     req.Round,
		Nonce:     req.Nonce,
		RepoURL:   res.RepoURL,
		CommitSHA: res.CommitSHA,
		PagesURL:  res.PagesURL,
	})
	if err != nil {
		return err
	}

	if err := sleep(ctx, n.warmup); err != nil {
		return err
	}

	for i := 0; i < n.attempts; i++ {
		if i > 0 {
			if err := sleep(ctx, n.backoff<<(i-1)); err != nil {
				return err
			}
		}

		status, err := n.post(ctx, req.EvaluationURL, body)
		if err != nil {
			n.logger.Printf("notify attempt %d/%d failed: %v", i+1, n.attempts, err)
			continue
		}
		if status == http.StatusOK {
			n.logger.Printf("notified evaluation url for task %q", req.Task)
			return nil
		}
		n.logger.Printf("notify attempt %d/%d got status %d", i+1, n.attempts, status)
	}

	metrics.IncNotifyFailure()
	return fmt.Errorf("could not notify evaluation url after %d attempts", n.attempts)
}

func (n *Notifier) post(ctx context.Context, url string, body []byte) (int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
