package repograder

import (
	"fmt"
	"html/template"
	"os"
	"strings"
)

// Fixed output filenames, overwritten on every run. ReportFile is the raw
// render; CleanReportFile is the same document after fence stripping.
const (
	ReportFile      = "report.html"
	CleanReportFile = "report_clean.html"
)

// reportTemplate embeds the graded code and the model's verdict. The code is
// contextually escaped by html/template; the model response is the HTML body
// of the report by the prompt's contract and is inserted as-is.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Code Grading Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; padding: 20px; background-color: #f8f9fa; }
        h1, h2 { color: #333; }
        pre { background: #eee; padding: 10px; border-radius: 5px; white-space: pre-wrap; }
        .container { max-width: 800px; margin: auto; background: white; padding: 20px; border-radius: 8px; box-shadow: 0 0 10px rgba(0, 0, 0, 0.1); }
    </style>
</head>
<body>
    <div class="container">
        <h1>Code Grading Report</h1>
        <h2>File Graded: {{.FileName}}</h2>

        <h2>Original Code:</h2>
        <pre>{{.Code}}</pre>

        <h2>Grading Results:</h2>
        {{.Result}}
    </div>
</body>
</html>
`))

type reportData struct {
	FileName string
	Code     string
	Result   template.HTML
}

// WriteReport renders the grading report to ReportFile, then writes a
// fence-stripped copy to CleanReportFile. Both paths are relative to the
// process working directory.
func WriteReport(fileName, code, gradingResult string) error {
	f, err := os.Create(ReportFile)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := reportTemplate.Execute(f, reportData{
		FileName: fileName,
		Code:     code,
		Result:   template.HTML(gradingResult),
	}); err != nil {
		f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}

	return cleanReport(ReportFile, CleanReportFile)
}

// cleanReport re-reads the rendered report and strips the literal markdown
// fence markers models occasionally emit despite instructions.
func cleanReport(src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read report for cleanup: %w", err)
	}

	cleaned := StripFences(string(content))

	if err := os.WriteFile(dst, []byte(cleaned), 0o644); err != nil {
		return fmt.Errorf("write cleaned report: %w", err)
	}
	return nil
}

// StripFences removes every literal "```html" and "```" sequence.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```html", "")
	return strings.ReplaceAll(s, "```", "")
}
