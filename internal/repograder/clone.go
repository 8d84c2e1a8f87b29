// Package repograder implements the interactive repository grading pipeline:
// clone a remote repository, let the operator pick one source file, grade it
// with a hosted generative model, and render the result as a standalone HTML
// report.
package repograder

import (
	"context"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
)

// Clone fetches the repository into dir, removing any stale clone from a
// prior run first. There is no incremental or cached clone: every run starts
// clean.
func Clone(ctx context.Context, repoURL, dir string) error {
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("remove stale clone %s: %w", dir, err)
		}
	}

	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      repoURL,
		Progress: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", repoURL, err)
	}
	return nil
}
