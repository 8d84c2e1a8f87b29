package repograder

import "fmt"

// gradingPromptFormat is the formatting-instruction prompt sent to the hosted
// model along with the full file content. The model is asked for a complete
// HTML document; the strict no-markdown-artifact instructions reduce (but do
// not eliminate) the stray code fences the cleanup pass removes afterwards.
const gradingPromptFormat = `AI-Powered Code Grading Assistant

### Task Description:
You are an AI-powered code grading assistant specializing in evaluating source
code submissions. Analyze the given code and return a formal, structured
evaluation report in HTML format only.

### Critical Instructions (STRICTLY FOLLOW THESE):
- Do NOT use emojis, symbols, or decorative characters. The output must be formal and professional.
- Return only valid, clean HTML5 - strictly no JSON, Markdown, or raw text.
- Completely remove any Markdown artifacts (no ` + "```html" + ` fences or similar).
- Do NOT use colors except black text on a white background.
- Headings (h1, h2, h3) should be centered and have bottom borders.
- Tables must have borders and clearly separate data.
- Code blocks must use a monospaced font, a light gray background, and proper padding.
- Ensure proper indentation, spacing, and structure in the generated HTML.

### Evaluation Criteria & Scoring:
Each category is scored from 0 to 10 (increments of 0.5):

| Criteria    | Evaluation Focus                                                   |
|-------------|--------------------------------------------------------------------|
| Correctness | Does the code function as expected? Any syntax or logical errors?  |
| Efficiency  | Is the time/space complexity optimal? Unnecessary loops avoided?   |
| Readability | Are names meaningful? Is the code easy to understand?              |
| Style       | Does the code follow the language's accepted style conventions?    |
| Security    | Are there vulnerabilities (injections, unchecked input, leaks)?    |
| Fragility   | How prone is the code to breaking under minor changes or edge cases? |

### Required Report Structure:
1. Overall Results: display the scores in a clean table.
2. Flagged Code Sections: show problematic code snippets with comments.
3. Recommendations for Improvement: structured, actionable insights.
4. Corrected Code Snippets: display the improved code.

The document must be a self-contained HTML5 page: white background, black
text, centered main heading, no external resources.

File: %s

Code:
%s
`

func buildGradingPrompt(fileName, content string) string {
	return fmt.Sprintf(gradingPromptFormat, fileName, content)
}
