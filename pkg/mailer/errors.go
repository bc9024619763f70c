package mailer

import "errors"

var (
	ErrHostRequired      = errors.New("smtp host is required")
	ErrFromRequired      = errors.New("smtp from address is required")
	ErrRecipientRequired = errors.New("recipient address is required")
	ErrEmptyBody         = errors.New("mail body is empty")
)
