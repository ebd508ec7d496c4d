package carrier

import "errors"

var (
	// ErrUnknownCarrier indicates the carrier is not present in the table.
	ErrUnknownCarrier = errors.New("carrier: unknown carrier")

	// ErrInvalidTemplate indicates a template without exactly one {0}
	// placeholder or without an '@' separator.
	ErrInvalidTemplate = errors.New("carrier: invalid template")

	// ErrDuplicateCarrier indicates two entries normalize to the same name.
	ErrDuplicateCarrier = errors.New("carrier: duplicate carrier")

	// ErrEmptyCarrierName indicates an entry with a blank carrier name.
	ErrEmptyCarrierName = errors.New("carrier: empty carrier name")

	// ErrEmptyTable indicates a source produced no entries.
	ErrEmptyTable = errors.New("carrier: table is empty")

	// ErrLoaderRequired indicates a nil loader was passed.
	ErrLoaderRequired = errors.New("carrier: loader is required")

	// Source errors.
	ErrUnsupportedFormat = errors.New("carrier: unsupported source format")
	ErrMalformedSource   = errors.New("carrier: malformed source")
	ErrFetchFailed       = errors.New("carrier: failed to fetch source")
	ErrSourceTooLarge    = errors.New("carrier: source exceeds size limit")
)
