package models

import "time"

// SubjectProgress is the per-subject aggregate the backend computes from a
// user's MCQ and essay history.
type SubjectProgress struct {
	Subject              string    `json:"subject"`
	TotalMCQsAttempted   int       `json:"total_mcqs_attempted"`
	TotalMCQsCorrect     int       `json:"total_mcqs_correct"`
	AccuracyPercentage   float64   `json:"accuracy_percentage"`
	TotalEssaysSubmitted int       `json:"total_essays_submitted"`
	AverageEssayScore    *float64  `json:"average_essay_score"`
	LastActivity         time.Time `json:"last_activity"`
}

// ProgressOverview is the cross-subject aggregate for one user.
type ProgressOverview struct {
	UserID                  int64             `json:"user_id"`
	Subjects                []SubjectProgress `json:"subjects"`
	OverallAccuracy         float64           `json:"overall_accuracy"`
	TotalQuestionsAttempted int               `json:"total_questions_attempted"`
}

// StudyMaterial is a stored reference to an uploaded study document.
type StudyMaterial struct {
	ID         int64     `json:"id"`
	Subject    string    `json:"subject"`
	Title      string    `json:"title"`
	FileType   string    `json:"file_type"`
	IsOfficial bool      `json:"is_official"`
	UploadedAt time.Time `json:"uploaded_at"`
	Processed  bool      `json:"processed"`
}
