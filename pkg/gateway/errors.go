package gateway

import "errors"

var (
	ErrBaseURLRequired = errors.New("gateway base url is required")
	ErrAddressRequired = errors.New("destination address is required")
	ErrRejected        = errors.New("gateway rejected the request")
)
