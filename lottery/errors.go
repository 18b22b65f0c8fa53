package lottery

import "errors"

// Kind classifies why an entrypoint rejected a call
type Kind int

const (
	InvalidArgument Kind = iota + 1
	InsufficientSupply
	InsufficientPayment
	Unauthorized
	RoundInProgress
	RoundNotFinished
	NotAllowed
	Arithmetic
)

var kindNames = map[Kind]string{
	InvalidArgument:     "InvalidArgument",
	InsufficientSupply:  "InsufficientSupply",
	InsufficientPayment: "InsufficientPayment",
	Unauthorized:        "Unauthorized",
	RoundInProgress:     "RoundInProgress",
	RoundNotFinished:    "RoundNotFinished",
	NotAllowed:          "NotAllowed",
	Arithmetic:          "Arithmetic",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Unknown"
}

// Error is a contract failure. Its message is the literal the contract fails with.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches errors of the same kind and message
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind && t.Message == e.Message
}

var (
	ErrTicketCount      = &Error{InvalidArgument, "TICKET COUNT NEEDS TO BE A POSITIVE INTEGER"}
	ErrInvalidArguments = &Error{InvalidArgument, "INVALID ARGUMENTS"}
	ErrNoTickets        = &Error{InsufficientSupply, "NO TICKETS AVAILABLE"}
	ErrInvalidAmount    = &Error{InsufficientPayment, "INVALID AMOUNT"}
	ErrNotAuthorized    = &Error{Unauthorized, "NOT_AUTHORIZED"}
	ErrNotAuthorised    = &Error{Unauthorized, "NOT_AUTHORISED"}
	ErrAlreadyRunning   = &Error{RoundInProgress, "LOTTERY ALREADY RUNNING"}
	ErrGameNotEnded     = &Error{RoundNotFinished, "GAME IS YET TO END"}
	ErrNotAllowed       = &Error{NotAllowed, "NOT ALLOWED"}
	ErrMutezOverflow    = &Error{Arithmetic, "MUTEZ OVERFLOW"}
	ErrDivisionByZero   = &Error{Arithmetic, "DIVISION BY ZERO"}
	ErrEmptySlot        = &Error{Arithmetic, "EMPTY PLAYER SLOT"}
)

// KindOf returns the kind of a contract failure, or 0 for any other error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}
