package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/prbarprep/barprep-go/internal/models"
)

// ProgressOverview fetches the cross-subject aggregate for a user.
func (c *Client) ProgressOverview(ctx context.Context, userID int64) (models.ProgressOverview, error) {
	var overview models.ProgressOverview
	path := fmt.Sprintf("/progress/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &overview, "progress", "overview"); err != nil {
		return models.ProgressOverview{}, err
	}
	return overview, nil
}

// SubjectProgress fetches the aggregate for one user and subject.
func (c *Client) SubjectProgress(ctx context.Context, userID int64, subject string) (models.SubjectProgress, error) {
	var progress models.SubjectProgress
	path := fmt.Sprintf("/progress/user/%d/subject/%s", userID, url.PathEscape(subject))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &progress, "progress", "subject"); err != nil {
		return models.SubjectProgress{}, err
	}
	return progress, nil
}
