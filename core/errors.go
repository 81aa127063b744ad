package core

import "errors"

var (
	ErrBadRequest        = errors.New("missing required fields")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrIssuanceFailure   = errors.New("credential issuance failed")
	ErrUnauthenticated   = errors.New("no credential presented")
	ErrInvalidCredential = errors.New("invalid credential")
)
