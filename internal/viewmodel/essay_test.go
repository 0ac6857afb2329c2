package viewmodel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prbarprep/barprep-go/internal/models"
	"github.com/prbarprep/barprep-go/internal/prompts"
	"github.com/prbarprep/barprep-go/internal/session"
)

type stubEssayBackend struct {
	mu            sync.Mutex
	essays        map[string][]models.Essay
	submitResult  models.Essay
	submitErr     error
	submitStarted chan struct{}
	submitRelease chan struct{}
	submitCalls   int
	historyCalls  int
}

func (s *stubEssayBackend) SubmitEssay(ctx context.Context, userID int64, payload models.EssaySubmission) (models.Essay, error) {
	s.mu.Lock()
	s.submitCalls++
	started := s.submitStarted
	release := s.submitRelease
	result := s.submitResult
	err := s.submitErr
	s.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return result, err
}

func (s *stubEssayBackend) UserEssays(ctx context.Context, userID int64, subject string) ([]models.Essay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historyCalls++
	return s.essays[subject], nil
}

func (s *stubEssayBackend) counts() (submits, histories int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitCalls, s.historyCalls
}

func newEssay(backend EssayBackend) *EssayPractice {
	return NewEssayPractice(backend, session.Static(1), zerolog.Nop())
}

func TestSetSubjectSelectsFirstPromptByDefault(t *testing.T) {
	backend := &stubEssayBackend{}
	vm := newEssay(backend)

	require.NoError(t, vm.SetSubject(context.Background(), "familia"))

	available := prompts.ForSubject("familia")
	require.NotEmpty(t, available)
	require.Equal(t, available[0], vm.Prompt())
	require.Equal(t, available, vm.Prompts())
}

func TestEssaySubjectSwitchKeepsDraftDiscardsGrade(t *testing.T) {
	backend := &stubEssayBackend{
		submitResult: models.Essay{ID: 9, Subject: "familia", Grade: &models.Grade{OverallScore: 81}},
	}
	vm := newEssay(backend)
	require.NoError(t, vm.SetSubject(context.Background(), "familia"))

	vm.SetDraft("Un borrador a medio escribir")
	_, err := vm.Submit(context.Background())
	require.NoError(t, err)
	vm.SetDraft("Un borrador a medio escribir")

	require.NoError(t, vm.SetSubject(context.Background(), "penal"))

	require.Equal(t, "Un borrador a medio escribir", vm.Draft())
	_, hasGrade := vm.Graded()
	require.False(t, hasGrade)
	require.Equal(t, prompts.ForSubject("penal")[0], vm.Prompt())
}

func TestSubmitRejectsBlankDraftBeforeAnyNetworkCall(t *testing.T) {
	backend := &stubEssayBackend{}
	vm := newEssay(backend)
	require.NoError(t, vm.SetSubject(context.Background(), "familia"))

	vm.SetDraft("   \n\t  ")
	require.False(t, vm.CanSubmit())

	_, err := vm.Submit(context.Background())
	require.ErrorIs(t, err, ErrEmptyDraft)

	submits, _ := backend.counts()
	require.Zero(t, submits)
}

func TestSubmitClearsDraftAndRefreshesHistory(t *testing.T) {
	graded := models.Essay{ID: 4, Subject: "familia", Grade: &models.Grade{OverallScore: 88.5, Feedback: "Bien estructurado"}}
	backend := &stubEssayBackend{
		submitResult: graded,
		essays:       map[string][]models.Essay{"familia": {graded}},
	}
	vm := newEssay(backend)
	require.NoError(t, vm.SetSubject(context.Background(), "familia"))
	_, historiesBefore := backend.counts()

	vm.SetDraft("La patria potestad se ejerce conjuntamente por ambos progenitores.")
	essay, err := vm.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, essay.Grade)
	require.InDelta(t, 88.5, essay.Grade.OverallScore, 0.001)

	require.Empty(t, vm.Draft())
	shown, ok := vm.Graded()
	require.True(t, ok)
	require.Equal(t, int64(4), shown.ID)

	_, historiesAfter := backend.counts()
	require.Equal(t, historiesBefore+1, historiesAfter)
	require.Len(t, vm.History(), 1)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	backend := &stubEssayBackend{submitErr: errors.New("grader unavailable")}
	vm := newEssay(backend)
	require.NoError(t, vm.SetSubject(context.Background(), "familia"))

	vm.SetDraft("Texto que no debe perderse")
	_, err := vm.Submit(context.Background())
	require.Error(t, err)

	require.Equal(t, "Texto que no debe perderse", vm.Draft())
	_, hasGrade := vm.Graded()
	require.False(t, hasGrade)
	require.True(t, vm.CanSubmit())
}

func TestEssaySubmitLocksSynchronously(t *testing.T) {
	backend := &stubEssayBackend{
		submitResult:  models.Essay{ID: 1, Grade: &models.Grade{OverallScore: 70}},
		submitStarted: make(chan struct{}),
		submitRelease: make(chan struct{}),
	}
	vm := newEssay(backend)
	require.NoError(t, vm.SetSubject(context.Background(), "familia"))
	vm.SetDraft("Contenido del ensayo")

	done := make(chan error, 1)
	go func() {
		_, err := vm.Submit(context.Background())
		done <- err
	}()
	<-backend.submitStarted

	require.False(t, vm.CanSubmit())
	_, err := vm.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	close(backend.submitRelease)
	require.NoError(t, <-done)

	submits, _ := backend.counts()
	require.Equal(t, 1, submits)
}

func TestWriteAnotherReturnsToComposing(t *testing.T) {
	backend := &stubEssayBackend{
		submitResult: models.Essay{ID: 2, Grade: &models.Grade{OverallScore: 92}},
	}
	vm := newEssay(backend)
	require.NoError(t, vm.SetSubject(context.Background(), "familia"))

	vm.SetDraft("Primer intento")
	_, err := vm.Submit(context.Background())
	require.NoError(t, err)
	_, ok := vm.Graded()
	require.True(t, ok)

	vm.WriteAnother()
	_, ok = vm.Graded()
	require.False(t, ok)
	require.Equal(t, prompts.ForSubject("familia")[0], vm.Prompt())
}

func TestHistorySummaryAveragesGradedOnly(t *testing.T) {
	backend := &stubEssayBackend{
		essays: map[string][]models.Essay{"familia": {
			{ID: 1, Grade: &models.Grade{OverallScore: 80}},
			{ID: 2, Grade: &models.Grade{OverallScore: 90}},
			{ID: 3}, // still ungraded
		}},
	}
	vm := newEssay(backend)
	require.NoError(t, vm.SetSubject(context.Background(), "familia"))

	total, average, graded := vm.HistorySummary()
	require.Equal(t, 3, total)
	require.Equal(t, 2, graded)
	require.InDelta(t, 85.0, average, 0.001)
}

func TestEssayWordCountTracksDraft(t *testing.T) {
	vm := newEssay(&stubEssayBackend{})
	require.NoError(t, vm.SetSubject(context.Background(), "familia"))

	vm.SetDraft("Hola   mundo  ")
	require.Equal(t, 2, vm.WordCount())

	vm.SetDraft("")
	require.Zero(t, vm.WordCount())
}
