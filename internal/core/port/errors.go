package port

import "errors"

// Sentinel errors returned by usecases and repositories. The HTTP layer
// maps these onto status codes; everything else is treated as an internal
// error.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadySent is returned when dispatch is requested for a
	// newsletter whose status is already terminal.
	ErrAlreadySent = errors.New("newsletter already sent")

	// ErrDispatchRunning is returned when a dispatch for the same
	// newsletter is already in flight.
	ErrDispatchRunning = errors.New("dispatch already running")

	// ErrNoRecipients is returned when recipient resolution produces an
	// empty set.
	ErrNoRecipients = errors.New("no valid recipients")

	// ErrInvalidOption is returned when a dispatch option fails its
	// range constraint.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInsufficientStock is returned when an order exceeds the
	// available stock of a book.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrEmailTaken is returned on registration with an email that is
	// already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login with a wrong email or
	// password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
