// Command repograder clones a remote repository, lets the operator pick one
// source file, grades it with the hosted Gemini API, and writes the result to
// a static HTML report in the working directory.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gradelab/code-grading-api/internal/infrastructure/config"
	"github.com/gradelab/code-grading-api/internal/infrastructure/inference"
	"github.com/gradelab/code-grading-api/internal/repograder"
	"github.com/gradelab/code-grading-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadRepograder(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stderr})

	model, err := inference.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("gemini client init failed")
	}

	repoURL := repoURLFromArgsOrPrompt()
	if repoURL == "" {
		log.Fatal().Msg("no repository URL provided")
	}

	err = repograder.Run(ctx, repograder.Options{
		RepoURL:  repoURL,
		CloneDir: cfg.CloneDir,
		In:       os.Stdin,
		Out:      os.Stdout,
		Model:    model,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("repository grading failed")
	}
}

func repoURLFromArgsOrPrompt() string {
	if len(os.Args) > 1 {
		return strings.TrimSpace(os.Args[1])
	}

	fmt.Print("Enter the repository URL: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
