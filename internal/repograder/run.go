package repograder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Generator is the slice of the inference client the grader needs.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Options configures one grading run.
type Options struct {
	RepoURL  string
	CloneDir string
	In       io.Reader // operator input, normally os.Stdin
	Out      io.Writer // listing and prompts, normally os.Stdout
	Model    Generator
}

// Run executes the linear pipeline: clone, list, select, grade, report.
// Clone failure, an empty listing, and an invalid selection are returned as
// errors (fatal to the caller); a model-call failure is degraded to an inline
// error string inside the generated report.
func Run(ctx context.Context, opts Options) error {
	if opts.CloneDir == "" {
		opts.CloneDir = "cloned_repo"
	}

	fmt.Fprintf(opts.Out, "Cloning repository from %s...\n", opts.RepoURL)
	if err := Clone(ctx, opts.RepoURL, opts.CloneDir); err != nil {
		return err
	}

	files, err := ListSourceFiles(opts.CloneDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found in the repository")
	}

	fmt.Fprintln(opts.Out, "Files in repository:")
	for i, f := range files {
		fmt.Fprintf(opts.Out, "%d. %s\n", i+1, f)
	}

	selected, err := selectFile(opts.In, opts.Out, files)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(filepath.Join(opts.CloneDir, selected))
	if err != nil {
		return fmt.Errorf("read %s: %w", selected, err)
	}

	fmt.Fprintf(opts.Out, "Grading %s...\n", selected)
	result := Grade(ctx, opts.Model, selected, string(content))

	if err := WriteReport(selected, string(content), result); err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "Report saved to %s (cleaned copy: %s).\n", ReportFile, CleanReportFile)
	return nil
}

// Grade sends the full file content to the model. Call failures are not
// fatal: the error is rendered inline so the report still gets written.
func Grade(ctx context.Context, model Generator, fileName, content string) string {
	result, err := model.Generate(ctx, buildGradingPrompt(fileName, content))
	if err != nil {
		return fmt.Sprintf("Error in API call: %v", err)
	}
	return result
}

// selectFile reads a 1-based index from the operator. Non-numeric or
// out-of-range input is an error.
func selectFile(in io.Reader, out io.Writer, files []string) (string, error) {
	fmt.Fprint(out, "Enter the number of the file to grade: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return "", fmt.Errorf("no selection provided")
	}

	idx, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return "", fmt.Errorf("invalid file selection %q", scanner.Text())
	}
	if idx < 1 || idx > len(files) {
		return "", fmt.Errorf("file selection %d out of range (1-%d)", idx, len(files))
	}

	return files[idx-1], nil
}
