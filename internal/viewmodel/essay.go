package viewmodel

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/prbarprep/barprep-go/internal/format"
	"github.com/prbarprep/barprep-go/internal/models"
	"github.com/prbarprep/barprep-go/internal/prompts"
	"github.com/prbarprep/barprep-go/internal/session"
	"github.com/prbarprep/barprep-go/internal/subjects"
)

// EssayBackend is the slice of the API client the essay page uses.
type EssayBackend interface {
	SubmitEssay(ctx context.Context, userID int64, payload models.EssaySubmission) (models.Essay, error)
	UserEssays(ctx context.Context, userID int64, subject string) ([]models.Essay, error)
}

// EssayPractice drives the essay page: Composing -> Grading -> Graded ->
// Composing again on "write another".
type EssayPractice struct {
	backend EssayBackend
	sess    session.Session
	logger  zerolog.Logger

	mu      sync.Mutex
	gen     uint64
	subject string
	prompts []string
	prompt  string
	draft   string
	grading bool
	graded  *models.Essay
	history []models.Essay
}

// NewEssayPractice builds the view-model for one session.
func NewEssayPractice(backend EssayBackend, sess session.Session, logger zerolog.Logger) *EssayPractice {
	return &EssayPractice{
		backend: backend,
		sess:    sess,
		logger:  logger.With().Str("component", "essay_practice").Logger(),
	}
}

// SetSubject switches the essay subject: the prompt selection resets to the
// subject's first prompt, any displayed grade is discarded (persisted essays
// stay fetchable through history), and the history list refreshes. The draft
// survives a subject switch.
func (p *EssayPractice) SetSubject(ctx context.Context, subject string) error {
	if !subjects.Valid(subject) {
		return ErrUnknownSubject
	}

	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.subject = subject
	p.prompts = prompts.ForSubject(subject)
	p.prompt = ""
	if first, ok := prompts.Default(subject); ok {
		p.prompt = first
	}
	p.graded = nil
	p.mu.Unlock()

	p.refreshHistory(ctx, gen)
	return nil
}

// refreshHistory re-reads the user's essays for the subject. Failures are
// logged only; the page keeps whatever list it had.
func (p *EssayPractice) refreshHistory(ctx context.Context, gen uint64) {
	p.mu.Lock()
	subject := p.subject
	p.mu.Unlock()

	essays, err := p.backend.UserEssays(ctx, p.sess.UserID, subject)
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to refresh essay history")
		return
	}

	p.mu.Lock()
	if gen == p.gen {
		p.history = essays
	}
	p.mu.Unlock()
}

// SelectPrompt picks a prompt by position in the subject's prompt list.
func (p *EssayPractice) SelectPrompt(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.prompts) {
		return ErrNoPrompt
	}
	p.prompt = p.prompts[index]
	return nil
}

// SetDraft replaces the draft text. Word count is derived, never stored.
func (p *EssayPractice) SetDraft(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = text
}

// WordCount reports the number of whitespace-separated tokens in the draft.
func (p *EssayPractice) WordCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return format.WordCount(p.draft)
}

// CanSubmit reports whether the submit control is enabled: a non-blank draft,
// a selected prompt, and no grading call already in flight.
func (p *EssayPractice) CanSubmit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.grading && p.prompt != "" && strings.TrimSpace(p.draft) != ""
}

// Submit sends the draft for grading. Grading is synchronous on the backend:
// the call blocks until the grade is attached or ctx expires. Preconditions
// fail before any network call; a failed submission leaves the draft and
// page state untouched. On success the draft clears and history refreshes.
func (p *EssayPractice) Submit(ctx context.Context) (models.Essay, error) {
	p.mu.Lock()
	if p.grading {
		p.mu.Unlock()
		return models.Essay{}, ErrSubmissionInFlight
	}
	if p.prompt == "" {
		p.mu.Unlock()
		return models.Essay{}, ErrNoPrompt
	}
	if strings.TrimSpace(p.draft) == "" {
		p.mu.Unlock()
		return models.Essay{}, ErrEmptyDraft
	}

	p.grading = true
	gen := p.gen
	payload := models.EssaySubmission{
		Subject: p.subject,
		Prompt:  p.prompt,
		Content: p.draft,
	}
	p.mu.Unlock()

	essay, err := p.backend.SubmitEssay(ctx, p.sess.UserID, payload)

	p.mu.Lock()
	p.grading = false
	if gen != p.gen {
		// Subject switched mid-grade; the essay is persisted server-side and
		// reachable through history, but this view has moved on.
		p.mu.Unlock()
		return essay, err
	}
	if err != nil {
		p.mu.Unlock()
		return models.Essay{}, err
	}
	p.graded = &essay
	p.draft = ""
	p.mu.Unlock()

	p.refreshHistory(ctx, gen)
	return essay, nil
}

// WriteAnother dismisses the displayed grade and returns to composing.
func (p *EssayPractice) WriteAnother() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.graded = nil
}

// ShowEssay displays a previously submitted essay from history.
func (p *EssayPractice) ShowEssay(essay models.Essay) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.graded = &essay
}

// Subject reports the selected subject code.
func (p *EssayPractice) Subject() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subject
}

// Prompts lists the prompts available for the subject.
func (p *EssayPractice) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.prompts))
	copy(out, p.prompts)
	return out
}

// Prompt reports the selected prompt text, empty when none.
func (p *EssayPractice) Prompt() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prompt
}

// Draft reports the current draft text.
func (p *EssayPractice) Draft() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// Graded returns the essay whose grade is on display, if any.
func (p *EssayPractice) Graded() (models.Essay, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.graded == nil {
		return models.Essay{}, false
	}
	return *p.graded, true
}

// History lists the user's essays for the subject, newest ordering as served.
func (p *EssayPractice) History() []models.Essay {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Essay, len(p.history))
	copy(out, p.history)
	return out
}

// HistorySummary aggregates the sidebar numbers: essay count and the mean of
// graded overall scores. Display-only; the authoritative aggregates come from
// the progress endpoints.
func (p *EssayPractice) HistorySummary() (total int, averageScore float64, graded int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	total = len(p.history)
	var sum float64
	for _, essay := range p.history {
		if essay.Grade != nil {
			sum += essay.Grade.OverallScore
			graded++
		}
	}
	if graded > 0 {
		averageScore = sum / float64(graded)
	}
	return total, averageScore, graded
}
