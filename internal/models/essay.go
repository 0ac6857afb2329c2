package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// EssaySubmission is the client-authored part of an essay.
type EssaySubmission struct {
	Subject string `json:"subject" validate:"required"`
	Prompt  string `json:"prompt" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Essay is a submitted essay. Grading happens synchronously on the backend, so
// a freshly submitted essay normally arrives with its grade attached.
type Essay struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Subject     string    `json:"subject"`
	Prompt      string    `json:"prompt"`
	Content     string    `json:"content"`
	SubmittedAt time.Time `json:"submitted_at"`
	Grade       *Grade    `json:"grade,omitempty"`
}

// Grade is the server-computed scoring record for an essay. Component scores
// are optional; the overall score is always present.
type Grade struct {
	OverallScore          float64        `json:"overall_score"`
	LegalAnalysisScore    *float64       `json:"legal_analysis_score"`
	WritingQualityScore   *float64       `json:"writing_quality_score"`
	CitationAccuracyScore *float64       `json:"citation_accuracy_score"`
	Feedback              string         `json:"feedback"`
	PointBreakdown        map[string]any `json:"point_breakdown,omitempty"`
	Citations             []Citation     `json:"citations,omitempty"`
}

// Citation is a referenced source on a grade. The backend emits either a bare
// string or a structured object, so both shapes decode into the same value:
// exactly one of Plain and Fields is set.
type Citation struct {
	Plain  string
	Fields map[string]string
}

// IsPlain reports whether the citation was delivered as a bare string.
func (c Citation) IsPlain() bool {
	return c.Fields == nil
}

// String renders the citation for display regardless of shape.
func (c Citation) String() string {
	if c.IsPlain() {
		return c.Plain
	}

	keys := make([]string, 0, len(c.Fields))
	for key := range c.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, c.Fields[key]))
	}
	return strings.Join(parts, ", ")
}

// UnmarshalJSON accepts both citation shapes.
func (c *Citation) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		c.Plain = plain
		c.Fields = nil
		return nil
	}

	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("citation must be a string or an object of strings: %w", err)
	}
	c.Plain = ""
	c.Fields = fields
	return nil
}

// MarshalJSON re-emits the citation in its original shape.
func (c Citation) MarshalJSON() ([]byte, error) {
	if c.IsPlain() {
		return json.Marshal(c.Plain)
	}
	return json.Marshal(c.Fields)
}
