package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/prbarprep/barprep-go/internal/models"
)

// SubmitEssay submits an essay for grading. Grading runs synchronously on the
// backend, so the returned essay normally carries its grade; a long-running
// grade holds the call open for as long as ctx allows.
func (c *Client) SubmitEssay(ctx context.Context, userID int64, payload models.EssaySubmission) (models.Essay, error) {
	if err := c.validatePayload(payload); err != nil {
		return models.Essay{}, err
	}

	var essay models.Essay
	path := fmt.Sprintf("/essays/submit/%d", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &essay, "essays", "submit"); err != nil {
		return models.Essay{}, err
	}
	return essay, nil
}

// UserEssays lists a user's essays, optionally filtered to one subject when
// subject is non-empty.
func (c *Client) UserEssays(ctx context.Context, userID int64, subject string) ([]models.Essay, error) {
	var query url.Values
	if subject != "" {
		query = url.Values{"subject": []string{subject}}
	}

	var essays []models.Essay
	path := fmt.Sprintf("/essays/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &essays, "essays", "user_essays"); err != nil {
		return nil, err
	}
	return essays, nil
}

// GetEssay fetches a single essay by id.
func (c *Client) GetEssay(ctx context.Context, essayID int64) (models.Essay, error) {
	var essay models.Essay
	path := fmt.Sprintf("/essays/%d", essayID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &essay, "essays", "get"); err != nil {
		return models.Essay{}, err
	}
	return essay, nil
}
