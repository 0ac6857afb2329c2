package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prbarprep/barprep-go/internal/models"
)

// GenerateQuestions asks the backend to create fresh questions for a subject.
// The created questions are not consumed here; callers follow up with
// QuestionsBySubject to pick them up.
func (c *Client) GenerateQuestions(ctx context.Context, payload models.GenerateRequest) error {
	if err := c.validatePayload(payload); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/mcq/generate", nil, payload, nil, "mcq", "generate")
}

// QuestionsBySubject fetches up to limit questions for a subject, in practice
// order.
func (c *Client) QuestionsBySubject(ctx context.Context, subject string, limit int) ([]models.Question, error) {
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}

	var questions []models.Question
	path := "/mcq/questions/" + url.PathEscape(subject)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &questions, "mcq", "questions_by_subject"); err != nil {
		return nil, err
	}
	return questions, nil
}

// SubmitAnswer grades one answer server-side and returns the verdict.
func (c *Client) SubmitAnswer(ctx context.Context, userID int64, payload models.AnswerSubmission) (models.AnswerResult, error) {
	if err := c.validatePayload(payload); err != nil {
		return models.AnswerResult{}, err
	}

	var result models.AnswerResult
	path := fmt.Sprintf("/mcq/submit/%d", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &result, "mcq", "submit"); err != nil {
		return models.AnswerResult{}, err
	}
	return result, nil
}

// Stats fetches the server-computed practice aggregate for one user and
// subject.
func (c *Client) Stats(ctx context.Context, userID int64, subject string) (models.Stats, error) {
	var stats models.Stats
	path := fmt.Sprintf("/mcq/stats/%d/%s", userID, url.PathEscape(subject))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &stats, "mcq", "stats"); err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}
