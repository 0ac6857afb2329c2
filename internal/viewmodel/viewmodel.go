// Package viewmodel implements the per-page state machines behind the study
// UI. Each view-model owns its local state exclusively: state changes happen
// only inside its own methods and its own subscription callback, and every
// asynchronous completion is guarded against applying to a superseded
// generation (subject switched, view closed).
//
// All authoritative scoring state originates server-side. View-models format
// and hold what the backend returns; they never compute a score they present
// as authoritative.
package viewmodel

import "errors"

// State names the phase a practice view is in.
type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StatePresenting State = "presenting"
	StateSubmitted  State = "submitted"
)

var (
	// ErrUnknownSubject rejects a subject code outside the fixed set.
	ErrUnknownSubject = errors.New("unknown subject code")
	// ErrSubmissionInFlight enforces at-most-one in-flight submission per
	// interactive control.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	// ErrNoQuestion means there is no loaded question to act on.
	ErrNoQuestion = errors.New("no question loaded")
	// ErrNoSelection means submit was attempted without picking an option.
	ErrNoSelection = errors.New("no answer selected")
	// ErrNotPresenting means the action needs a question on screen.
	ErrNotPresenting = errors.New("no question is being presented")
	// ErrEmptyDraft rejects an essay whose draft is blank after trimming.
	ErrEmptyDraft = errors.New("essay draft is empty")
	// ErrNoPrompt rejects an essay submission without a selected prompt.
	ErrNoPrompt = errors.New("no essay prompt selected")
	// ErrEmptyMessage rejects a blank chat message.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrNoRoom means no chat room is currently open.
	ErrNoRoom = errors.New("no chat room open")
)
