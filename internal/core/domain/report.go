package domain

// GradedFile holds the filename and the exact text that was sent to the
// model. When the submission exceeded the truncation budget, Content is the
// truncated text plus the marker, never the full original.
type GradedFile struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// GradingReport pairs a submitted file with the model's generated feedback.
// Immutable once written; one record per successful grading call.
type GradingReport struct {
	ID     string     `json:"id"`
	File   GradedFile `json:"file"`
	Report string     `json:"report"`
}
