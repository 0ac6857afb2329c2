package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/prbarprep/barprep-go/internal/models"
	"github.com/prbarprep/barprep-go/internal/session"
	"github.com/prbarprep/barprep-go/internal/subjects"
)

const (
	questionBatchLimit = 20
	generateBatchSize  = 10
	defaultDifficulty  = "medium"
)

// MCQBackend is the slice of the API client the MCQ page uses.
type MCQBackend interface {
	GenerateQuestions(ctx context.Context, payload models.GenerateRequest) error
	QuestionsBySubject(ctx context.Context, subject string, limit int) ([]models.Question, error)
	SubmitAnswer(ctx context.Context, userID int64, payload models.AnswerSubmission) (models.AnswerResult, error)
	Stats(ctx context.Context, userID int64, subject string) (models.Stats, error)
}

// MCQPractice drives the multiple-choice practice page:
// Idle -> Loading -> Presenting -> Submitted -> Presenting(next) | Loading.
type MCQPractice struct {
	backend MCQBackend
	sess    session.Session
	logger  zerolog.Logger
	now     func() time.Time

	mu         sync.Mutex
	gen        uint64
	cancel     context.CancelFunc
	state      State
	subject    string
	questions  []models.Question
	index      int
	selected   string
	result     *models.AnswerResult
	stats      models.Stats
	submitting bool
	generating bool
	shownAt    time.Time
}

// NewMCQPractice builds the view-model for one session.
func NewMCQPractice(backend MCQBackend, sess session.Session, logger zerolog.Logger) *MCQPractice {
	return &MCQPractice{
		backend: backend,
		sess:    sess,
		logger:  logger.With().Str("component", "mcq_practice").Logger(),
		now:     time.Now,
		state:   StateIdle,
	}
}

// SetSubject switches the practice subject. All selection and result state
// for the previous subject is discarded before the new data loads, and any
// in-flight fetch for the previous subject is cancelled; its late resolution
// will not be applied.
func (p *MCQPractice) SetSubject(ctx context.Context, subject string) error {
	if !subjects.Valid(subject) {
		return ErrUnknownSubject
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.gen++
	gen := p.gen
	p.subject = subject
	p.questions = nil
	p.index = 0
	p.selected = ""
	p.result = nil
	p.stats = models.Stats{}
	p.state = StateLoading
	p.mu.Unlock()

	var (
		questions []models.Question
		stats     models.Stats
		statsOK   bool
	)

	g, groupCtx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		loaded, err := p.backend.QuestionsBySubject(groupCtx, subject, questionBatchLimit)
		if err != nil {
			return err
		}
		questions = loaded
		return nil
	})
	g.Go(func() error {
		// Stats are a background refresh: failure is logged, never fatal.
		loaded, err := p.backend.Stats(groupCtx, p.sess.UserID, subject)
		if err != nil {
			p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to refresh practice stats")
			return nil
		}
		stats = loaded
		statsOK = true
		return nil
	})

	if err := g.Wait(); err != nil {
		p.mu.Lock()
		if gen == p.gen {
			p.state = StateIdle
		}
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return nil
	}
	p.questions = questions
	if statsOK {
		p.stats = stats
	}
	if len(questions) == 0 {
		p.state = StateIdle
	} else {
		p.state = StatePresenting
		p.shownAt = p.now()
	}
	return nil
}

// Select records the chosen option label. Only valid while a question is on
// screen and unanswered.
func (p *MCQPractice) Select(label string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePresenting {
		return ErrNotPresenting
	}
	p.selected = label
	return nil
}

// Submit grades the current selection server-side. The control locks
// synchronously: a second Submit while one is pending fails immediately with
// ErrSubmissionInFlight. A failed submission leaves the page exactly where it
// was, selection included.
func (p *MCQPractice) Submit(ctx context.Context) (models.AnswerResult, error) {
	p.mu.Lock()
	if p.submitting {
		p.mu.Unlock()
		return models.AnswerResult{}, ErrSubmissionInFlight
	}
	if p.state != StatePresenting {
		p.mu.Unlock()
		return models.AnswerResult{}, ErrNotPresenting
	}
	if p.selected == "" {
		p.mu.Unlock()
		return models.AnswerResult{}, ErrNoSelection
	}
	if p.index >= len(p.questions) {
		p.mu.Unlock()
		return models.AnswerResult{}, ErrNoQuestion
	}

	p.submitting = true
	gen := p.gen
	question := p.questions[p.index]
	spent := int(p.now().Sub(p.shownAt).Seconds())
	payload := models.AnswerSubmission{
		QuestionID:       question.ID,
		SelectedAnswer:   p.selected,
		TimeSpentSeconds: &spent,
	}
	p.mu.Unlock()

	result, err := p.backend.SubmitAnswer(ctx, p.sess.UserID, payload)

	p.mu.Lock()
	p.submitting = false
	if gen != p.gen {
		// Subject switched while the call was in flight; the answer was
		// graded server-side but this view has moved on.
		p.mu.Unlock()
		return result, err
	}
	if err != nil {
		p.mu.Unlock()
		return models.AnswerResult{}, err
	}
	p.result = &result
	p.state = StateSubmitted
	p.mu.Unlock()

	p.refreshStats(ctx, gen)

	return result, nil
}

// refreshStats re-reads the server aggregate after a submission. Failures are
// logged only; accuracy shown is always the server's number.
func (p *MCQPractice) refreshStats(ctx context.Context, gen uint64) {
	stats, err := p.backend.Stats(ctx, p.sess.UserID, p.subjectSnapshot())
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to refresh practice stats")
		return
	}

	p.mu.Lock()
	if gen == p.gen {
		p.stats = stats
	}
	p.mu.Unlock()
}

func (p *MCQPractice) subjectSnapshot() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subject
}

// Next advances to the next question, or reloads a fresh batch when the
// current one is exhausted.
func (p *MCQPractice) Next(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateSubmitted {
		p.mu.Unlock()
		return ErrNotPresenting
	}
	if p.index < len(p.questions)-1 {
		p.index++
		p.selected = ""
		p.result = nil
		p.state = StatePresenting
		p.shownAt = p.now()
		p.mu.Unlock()
		return nil
	}
	subject := p.subject
	p.mu.Unlock()

	return p.SetSubject(ctx, subject)
}

// Generate asks the backend for a fresh batch of questions and reloads. Like
// Submit, the control locks synchronously against double triggering.
func (p *MCQPractice) Generate(ctx context.Context) error {
	p.mu.Lock()
	if p.generating {
		p.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if p.subject == "" {
		p.mu.Unlock()
		return ErrUnknownSubject
	}
	p.generating = true
	subject := p.subject
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.generating = false
		p.mu.Unlock()
	}()

	err := p.backend.GenerateQuestions(ctx, models.GenerateRequest{
		Subject:      subject,
		NumQuestions: generateBatchSize,
		Difficulty:   defaultDifficulty,
	})
	if err != nil {
		return err
	}

	return p.SetSubject(ctx, subject)
}

// Close cancels any in-flight fetch; late resolutions will not touch state.
func (p *MCQPractice) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// State reports the current page phase.
func (p *MCQPractice) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subject reports the selected subject code.
func (p *MCQPractice) Subject() string {
	return p.subjectSnapshot()
}

// Current returns the question on screen.
func (p *MCQPractice) Current() (models.Question, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index >= len(p.questions) {
		return models.Question{}, false
	}
	return p.questions[p.index], true
}

// Selected reports the chosen option label, empty when none.
func (p *MCQPractice) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

// Result returns the grading verdict for the current question, if submitted.
func (p *MCQPractice) Result() (models.AnswerResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return models.AnswerResult{}, false
	}
	return *p.result, true
}

// Stats returns the latest server-reported aggregate.
func (p *MCQPractice) Stats() models.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Progress reports the 1-based position within the loaded batch.
func (p *MCQPractice) Progress() (current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.questions) == 0 {
		return 0, 0
	}
	return p.index + 1, len(p.questions)
}
