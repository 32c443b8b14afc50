package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a quiz session has not been opened.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrInvalidBank wraps every integrity problem found in a bank.
	ErrInvalidBank = errors.New("invalid question bank")
	// ErrNotPlaying is returned when an answer arrives outside the PLAYING state.
	ErrNotPlaying = errors.New("quiz is not in progress")
	// ErrAlreadyAnswered is returned for a repeated answer to the same question.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrQuestionOutOfOrder is returned for an answer to a question that is not current.
	ErrQuestionOutOfOrder = errors.New("question is not the current one")
	// ErrOptionNotFound indicates a submitted option ID is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrRevealPending is returned while the previous answer is still being revealed.
	ErrRevealPending = errors.New("previous answer is still being revealed")
	// ErrSessionClosed is returned for operations on a closed session.
	ErrSessionClosed = errors.New("quiz session closed")
)
