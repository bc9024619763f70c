package feedback

import "errors"

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrFeedbackClosed   = errors.New("feedback is not open")
)
