package offer

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned while decoding catalog records.
var (
	// ErrInvalidPrice indicates a subscription amount that is not a decimal number.
	ErrInvalidPrice = constError("invalid price")

	// ErrMissingID indicates a record without an offer identifier.
	ErrMissingID = constError("offer id is required")
)
