package viewmodel

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/prbarprep/barprep-go/internal/models"
	"github.com/prbarprep/barprep-go/internal/session"
	"github.com/prbarprep/barprep-go/internal/subjects"
)

// ProgressBackend is the slice of the API client the progress page uses.
type ProgressBackend interface {
	ProgressOverview(ctx context.Context, userID int64) (models.ProgressOverview, error)
	SubjectProgress(ctx context.Context, userID int64, subject string) (models.SubjectProgress, error)
}

// ProgressView is read-only: it re-fetches server aggregates on open and on
// subject change and has no mutation path.
type ProgressView struct {
	backend ProgressBackend
	sess    session.Session
	logger  zerolog.Logger

	mu       sync.Mutex
	gen      uint64
	overview *models.ProgressOverview
	subject  string
	detail   *models.SubjectProgress
}

// NewProgressView builds the view-model for one session.
func NewProgressView(backend ProgressBackend, sess session.Session, logger zerolog.Logger) *ProgressView {
	return &ProgressView{
		backend: backend,
		sess:    sess,
		logger:  logger.With().Str("component", "progress_view").Logger(),
	}
}

// Refresh re-fetches the cross-subject overview.
func (v *ProgressView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.mu.Unlock()

	overview, err := v.backend.ProgressOverview(ctx, v.sess.UserID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	if gen == v.gen {
		v.overview = &overview
	}
	v.mu.Unlock()
	return nil
}

// SetSubject loads the aggregate for one subject, discarding the previously
// displayed detail before the new one loads.
func (v *ProgressView) SetSubject(ctx context.Context, subject string) error {
	if !subjects.Valid(subject) {
		return ErrUnknownSubject
	}

	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.subject = subject
	v.detail = nil
	v.mu.Unlock()

	detail, err := v.backend.SubjectProgress(ctx, v.sess.UserID, subject)
	if err != nil {
		return err
	}

	v.mu.Lock()
	if gen == v.gen {
		v.detail = &detail
	}
	v.mu.Unlock()
	return nil
}

// Overview returns the latest fetched cross-subject aggregate.
func (v *ProgressView) Overview() (models.ProgressOverview, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.overview == nil {
		return models.ProgressOverview{}, false
	}
	return *v.overview, true
}

// Subject returns the latest fetched per-subject aggregate.
func (v *ProgressView) Subject() (models.SubjectProgress, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.detail == nil {
		return models.SubjectProgress{}, false
	}
	return *v.detail, true
}
