package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prbarprep/barprep-go/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	return client, server
}

func TestSubmitAnswerHitsExpectedPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/mcq/submit/7", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Correlation-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"is_correct":true,"correct_answer":"B","explanation":null,"selected_answer":"B"}`))
	})

	result, err := client.SubmitAnswer(context.Background(), 7, models.AnswerSubmission{
		QuestionID:     12,
		SelectedAnswer: "B",
	})
	require.NoError(t, err)
	require.True(t, result.IsCorrect)
	require.Equal(t, "B", result.CorrectAnswer)
	require.Nil(t, result.Explanation)
}

func TestQuestionsBySubjectSendsLimit(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/mcq/questions/familia", r.URL.Path)
		require.Equal(t, "20", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"id":1,"subject":"familia","question_text":"¿?","options":[{"label":"A","text":"sí"}],"difficulty":"medium"}]`))
	})

	questions, err := client.QuestionsBySubject(context.Background(), "familia", 20)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, int64(1), questions[0].ID)
	require.Equal(t, "A", questions[0].Options[0].Label)
}

func TestChatMessagesSendsLimit(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/room/3/messages", r.URL.Path)
		require.Equal(t, "50", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[]`))
	})

	messages, err := client.Messages(context.Background(), 3, 50)
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestValidationFailureSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	_, err := client.SubmitEssay(context.Background(), 1, models.EssaySubmission{
		Subject: "familia",
		Prompt:  "Discuta la custodia compartida.",
		Content: "",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Zero(t, hits.Load(), "no request should be issued for an invalid payload")
}

func TestAPIErrorCarriesStatusAndDetail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"User not found"}`))
	})

	_, err := client.GetUser(context.Background(), 99)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "User not found", apiErr.Message)
	require.True(t, IsNotFound(err))
}

func TestStatsDecodesBackendKeys(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/mcq/stats/1/familia", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_attempted": 2, "total_correct": 1, "accuracy": 50.0}`))
	})

	stats, err := client.Stats(context.Background(), 1, "familia")
	require.NoError(t, err)
	require.Equal(t, 2, stats.Attempted)
	require.Equal(t, 1, stats.Correct)
	require.InDelta(t, 50.0, stats.Accuracy, 0.001)
}

func TestTransportErrorWhenServerUnreachable(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Stats(context.Background(), 1, "penal")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestUploadMaterialBuildsMultipartForm(t *testing.T) {
	pdfHeader := []byte("%PDF-1.7\n%fake body for sniffing")

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/materials/upload/4", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "familia", r.FormValue("subject"))
		require.Equal(t, "Apuntes de custodia", r.FormValue("title"))
		require.Equal(t, "false", r.FormValue("is_official"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		require.Equal(t, "apuntes.pdf", header.Filename)
		require.Contains(t, header.Header.Get("Content-Type"), "application/pdf")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":10,"subject":"familia","title":"Apuntes de custodia","file_type":".pdf","is_official":false,"uploaded_at":"2025-03-04T10:00:00Z","processed":false}`))
	})

	material, err := client.UploadMaterial(context.Background(), 4, MaterialUpload{
		Subject:  "familia",
		Title:    "Apuntes de custodia",
		Filename: "apuntes.pdf",
		Data:     pdfHeader,
	})
	require.NoError(t, err)
	require.Equal(t, int64(10), material.ID)
}

func TestUserEssaysOmitsSubjectWhenUnset(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/essays/user/1", r.URL.Path)
		_, ok := r.URL.Query()["subject"]
		require.False(t, ok, "subject filter should be absent when not requested")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.UserEssays(context.Background(), 1, "")
	require.NoError(t, err)
}

func TestAuthTokenAttachedWhenConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`["familia"]`))
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop(), WithAuthToken("token-123"))
	codes, err := client.Subjects(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"familia"}, codes)
}
