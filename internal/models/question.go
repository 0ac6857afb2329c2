package models

import "time"

// Option is one labeled answer choice on a multiple-choice question. The label
// is the single distinguishing token ("A".."D"), the text is the option body.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is a multiple-choice question as served to students: the correct
// answer is withheld server-side and only revealed through submission results.
type Question struct {
	ID           int64    `json:"id"`
	Subject      string   `json:"subject"`
	QuestionText string   `json:"question_text"`
	Options      []Option `json:"options"`
	Difficulty   string   `json:"difficulty"`
}

// AnswerSubmission is the payload for answering a question.
type AnswerSubmission struct {
	QuestionID       int64  `json:"question_id" validate:"required,gt=0"`
	SelectedAnswer   string `json:"selected_answer" validate:"required,len=1"`
	TimeSpentSeconds *int   `json:"time_spent_seconds,omitempty" validate:"omitempty,gte=0"`
}

// AnswerResult is the server's verdict on a submitted answer. It is the only
// place correctness originates; the client never decides this locally.
type AnswerResult struct {
	IsCorrect      bool    `json:"is_correct"`
	CorrectAnswer  string  `json:"correct_answer"`
	Explanation    *string `json:"explanation"`
	SelectedAnswer string  `json:"selected_answer"`
}

// GenerateRequest asks the backend to create fresh questions for a subject.
type GenerateRequest struct {
	Subject      string `json:"subject" validate:"required"`
	NumQuestions int    `json:"num_questions" validate:"required,gte=1,lte=50"`
	Difficulty   string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// Stats is the server-computed practice aggregate for one user and subject.
// Accuracy is reported by the server, not recomputed from attempted/correct.
type Stats struct {
	Attempted int     `json:"total_attempted"`
	Correct   int     `json:"total_correct"`
	Accuracy  float64 `json:"accuracy"`
}

// User is an account record owned by the backend.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  *string   `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserCreate is the payload for registering a user.
type UserCreate struct {
	Email    string  `json:"email" validate:"required,email"`
	Username string  `json:"username" validate:"required,min=1,max=64"`
	FullName *string `json:"full_name,omitempty"`
}
