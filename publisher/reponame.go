package publisher

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var repoSlugRe = regexp.MustCompile(`[^a-z0-9-]+`)

// RepoName derives a deterministic repository name from the task and the
// requester email, so follow-up rounds land in the same repo and tasks from
// different requesters never collide.
func RepoName(task, email string) string {
	slug := strings.ToLower(strings.TrimSpace(task))
	slug = repoSlugRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "task"
	}
	if len(slug) > 60 {
		slug = strings.Trim(slug[:60], "-")
	}

	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return slug + "-" + hex.EncodeToString(sum[:])[:6]
}
