package adapter

import "errors"

// Errors mapped from admin API status codes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrOffline             = errors.New("edge node is offline")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("shared store unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrEmptyAddress  = errors.New("empty admin API address")
	ErrRequestFailed = errors.New("admin API request failed")
	ErrDecodeFailed  = errors.New("decode admin API response")
)
