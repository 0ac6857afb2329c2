package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/prbarprep/barprep-go/internal/models"
)

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, payload models.UserCreate) (models.User, error) {
	if err := c.validatePayload(payload); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users/", nil, payload, &user, "users", "create"); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetUser fetches a user by id. Missing records surface as an APIError with a
// 404 status.
func (c *Client) GetUser(ctx context.Context, userID int64) (models.User, error) {
	var user models.User
	path := fmt.Sprintf("/users/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &user, "users", "get"); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail fetches a user by email address.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	path := "/users/email/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &user, "users", "get_by_email"); err != nil {
		return models.User{}, err
	}
	return user, nil
}
