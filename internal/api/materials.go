package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/gabriel-vasile/mimetype"

	"github.com/prbarprep/barprep-go/internal/models"
)

// MaterialUpload describes a study document to upload.
type MaterialUpload struct {
	Subject    string `validate:"required"`
	Title      string `validate:"required,min=1,max=255"`
	IsOfficial bool
	Filename   string `validate:"required"`
	Data       []byte `validate:"required"`
}

// UploadMaterial stores a study document on the backend. The content type is
// sniffed from the file bytes rather than trusted from the filename.
func (c *Client) UploadMaterial(ctx context.Context, userID int64, upload MaterialUpload) (models.StudyMaterial, error) {
	if err := c.validatePayload(upload); err != nil {
		return models.StudyMaterial{}, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, upload.Filename))
	header.Set("Content-Type", mimetype.Detect(upload.Data).String())

	part, err := writer.CreatePart(header)
	if err != nil {
		return models.StudyMaterial{}, &ValidationError{Err: err}
	}
	if _, err := part.Write(upload.Data); err != nil {
		return models.StudyMaterial{}, &ValidationError{Err: err}
	}

	if err := writer.WriteField("subject", upload.Subject); err != nil {
		return models.StudyMaterial{}, &ValidationError{Err: err}
	}
	if err := writer.WriteField("title", upload.Title); err != nil {
		return models.StudyMaterial{}, &ValidationError{Err: err}
	}
	if err := writer.WriteField("is_official", strconv.FormatBool(upload.IsOfficial)); err != nil {
		return models.StudyMaterial{}, &ValidationError{Err: err}
	}
	if err := writer.Close(); err != nil {
		return models.StudyMaterial{}, &ValidationError{Err: err}
	}

	path := fmt.Sprintf("/materials/upload/%d", userID)
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &body)
	if err != nil {
		return models.StudyMaterial{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var material models.StudyMaterial
	if err := c.send(req, &material, "materials", "upload"); err != nil {
		return models.StudyMaterial{}, err
	}
	return material, nil
}

// MaterialsBySubject lists stored materials for a subject.
func (c *Client) MaterialsBySubject(ctx context.Context, subject string) ([]models.StudyMaterial, error) {
	var materials []models.StudyMaterial
	path := "/materials/subject/" + subject
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &materials, "materials", "by_subject"); err != nil {
		return nil, err
	}
	return materials, nil
}

// UserMaterials lists the materials a user has uploaded.
func (c *Client) UserMaterials(ctx context.Context, userID int64) ([]models.StudyMaterial, error) {
	var materials []models.StudyMaterial
	path := fmt.Sprintf("/materials/user/%d", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &materials, "materials", "by_user"); err != nil {
		return nil, err
	}
	return materials, nil
}

// DeleteMaterial removes a stored material.
func (c *Client) DeleteMaterial(ctx context.Context, materialID int64) error {
	path := fmt.Sprintf("/materials/%d", materialID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, "materials", "delete")
}
