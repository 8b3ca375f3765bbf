package hoyolab

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound means no game account or server matches the UID.
	ErrAccountNotFound = errors.New("hoyolab: account not found")
	// ErrAlreadyClaimed is returned when today's check-in reward was already taken.
	ErrAlreadyClaimed = errors.New("hoyolab: daily reward already claimed")
	// ErrCaptcha is returned when the check-in is blocked by a captcha challenge.
	ErrCaptcha = errors.New("hoyolab: blocked by captcha")
)

const retcodeAlreadyClaimed = -5003

// APIError is a non-zero retcode returned by the portal.
type APIError struct {
	Retcode int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hoyolab api error: retcode %d: %s", e.Retcode, e.Message)
}

// ErrUnsupportedGame is returned when a game has no recovery mapping.
var ErrUnsupportedGame = errors.New("hoyolab: game not supported")
