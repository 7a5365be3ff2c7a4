package domain

import "errors"

var (
	// ErrDataUnavailable indicates the catalog could not be fetched or parsed.
	ErrDataUnavailable = errors.New("catalog data unavailable")
	// ErrNoQuestions is returned when a company has no MCQ questions to exam on.
	ErrNoQuestions = errors.New("no exam questions for company")
	// ErrNoActiveSession is returned when an exam operation needs a running session.
	ErrNoActiveSession = errors.New("no active exam session")
	// ErrUnknownItem indicates an answer referenced an item outside the session.
	ErrUnknownItem = errors.New("item not part of current session")
	// ErrEntryNotFound indicates a tracker entry ID is unknown.
	ErrEntryNotFound = errors.New("tracker entry not found")
)
