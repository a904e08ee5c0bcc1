// Package publisher pushes generated sites to GitHub and serves them through
// GitHub Pages.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

const defaultBranch = "main"

// Config holds the hosting credentials.
type Config struct {
	Token string
}

// PushResult reports where the files landed.
type PushResult struct {
	RepoURL   string
	CommitSHA string
}

// GitHub talks to the GitHub REST API on behalf of a single token owner.
type GitHub struct {
	client  *github.Client
	owner   string
	verbose bool
	logger  *log.Logger
}

// New creates a GitHub host and resolves the token owner immediately so the
// login can be reused for URL construction.
func New(ctx context.Context, cfg Config, httpClient *http.Client, verbose bool, logger *log.Logger) (*GitHub, error) {
	if cfg.Token == "" {
		return nil, errors.New("github token is required")
	}
	if logger == nil {
		logger = log.Default()
	}

	if httpClient == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(httpClient)

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("resolve token owner: %w", err)
	}

	return &GitHub{
		client:  client,
		owner:   user.GetLogin(),
		verbose: verbose,
		logger:  logger,
	}, nil
}

func (g *GitHub) infof(format string, args ...interface{}) {
	if !g.verbose {
		return
	}
	g.logger.Printf("[INFO] "+format, args...)
}

// Owner returns the login the token authenticates as.
func (g *GitHub) Owner() string {
	return g.owner
}

// EnsureRepo makes sure a public repository with the given name exists and
// reports whether it had to be created.
func (g *GitHub) EnsureRepo(ctx context.Context, name, description string) (bool, error) {
	_, resp, err := g.client.Repositories.Get(ctx, g.owner, name)
	if err == nil {
		g.infof("repo %s/%s already exists, updating files", g.owner, name)
		return false, nil
	}
	if !isNotFound(resp) {
		return false, fmt.Errorf("get repo %s: %w", name, err)
	}

	g.infof("repo %s/%s not found, creating a new public repo", g.owner, name)
	_, _, err = g.client.Repositories.Create(ctx, "", &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(false),
	})
	if err != nil {
		return false, fmt.Errorf("create repo %s: %w", name, err)
	}
	return true, nil
}

// PushFiles commits every file onto the default branch, creating or updating
// as needed, and returns the SHA of the last commit made.
func (g *GitHub) PushFiles(ctx context.Context, repo string, files map[string]string, message string) (PushResult, error) {
	if len(files) == 0 {
		return PushResult{}, errors.New("no files to push")
	}

	// Stable order; index.html first so a brand-new repo gets its initial
	// commit from the file Pages actually serves.
	paths := make([]string, 0, len(files))
	for p := range files {
		if p != "index.html" {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	if _, ok := files["index.html"]; ok {
		paths = append([]string{"index.html"}, paths...)
	}

	var lastSHA string
	for _, path := range paths {
		opts := &github.RepositoryContentFileOptions{
			Message: github.String(fmt.Sprintf("%s for %s", message, path)),
			Content: []byte(files[path]),
			Branch:  github.String(defaultBranch),
		}

		existing, _, resp, err := g.client.Repositories.GetContents(ctx, g.owner, repo, path, &github.RepositoryContentGetOptions{Ref: defaultBranch})
		switch {
		case err == nil && existing != nil:
			opts.SHA = github.String(existing.GetSHA())
			res, _, err := g.client.Repositories.UpdateFile(ctx, g.owner, repo, path, opts)
			if err != nil {
				return PushResult{}, fmt.Errorf("update %s: %w", path, err)
			}
			lastSHA = res.Commit.GetSHA()
			g.infof("updated file %s", path)
		case isNotFound(resp):
			res, _, err := g.client.Repositories.CreateFile(ctx, g.owner, repo, path, opts)
			if err != nil {
				return PushResult{}, fmt.Errorf("create %s: %w", path, err)
			}
			lastSHA = res.Commit.GetSHA()
			g.infof("created file %s", path)
		default:
			return PushResult{}, fmt.Errorf("get contents %s: %w", path, err)
		}
	}

	return PushResult{
		RepoURL:   g.RepoURL(repo),
		CommitSHA: lastSHA,
	}, nil
}

// EnablePages activates the Pages site for the repository, serving the
// default branch root. An HTTP 409 means Pages is already enabled.
func (g *GitHub) EnablePages(ctx context.Context, repo string) error {
	_, resp, err := g.client.Repositories.EnablePages(ctx, g.owner, repo, &github.Pages{
		Source: &github.PagesSource{
			Branch: github.String(defaultBranch),
			Path:   github.String("/"),
		},
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusConflict {
			g.infof("pages already enabled for %s/%s", g.owner, repo)
			return nil
		}
		return fmt.Errorf("enable pages for %s: %w", repo, err)
	}
	g.infof("enabled pages for %s/%s", g.owner, repo)
	return nil
}

// FetchFile returns the decoded contents of a file on the default branch.
func (g *GitHub) FetchFile(ctx context.Context, repo, path string) (string, error) {
	fc, _, _, err := g.client.Repositories.GetContents(ctx, g.owner, repo, path, &github.RepositoryContentGetOptions{Ref: defaultBranch})
	if err != nil {
		return "", fmt.Errorf("get contents %s/%s: %w", repo, path, err)
	}
	if fc == nil {
		return "", fmt.Errorf("%s is not a file", path)
	}
	return fc.GetContent()
}

// PagesURL is the public URL the deployed site will be served from.
func (g *GitHub) PagesURL(repo string) string {
	return fmt.Sprintf("https://%s.github.io/%s/", g.owner, repo)
}

// RepoURL is the browsable repository URL.
func (g *GitHub) RepoURL(repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s", g.owner, repo)
}

func isNotFound(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}
