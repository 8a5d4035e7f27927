package transport

import "errors"

var (
	errClosed       = errors.New("transport: connection closed")
	errBackpressure = errors.New("transport: send buffer full")
)
