package network

import "errors"

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrMissingSignature = errors.New("missing signature")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidAmount    = errors.New("invalid amount")
	errEmptyPrivateKey  = errors.New("empty private key")
)
