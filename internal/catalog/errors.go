package catalog

type constError string

func (e constError) Error() string { return string(e) }

const (
	// ErrUnsupportedSchema is returned for a schema_version outside the supported range.
	ErrUnsupportedSchema constError = "unsupported catalog schema version"

	// ErrDuplicateOffer is reported in Catalog.Skipped for a repeated offer id.
	ErrDuplicateOffer constError = "duplicate offer id"

	// ErrUnknownFormat is returned by LoadFile for an unrecognized extension.
	ErrUnknownFormat constError = "unknown catalog file format"

	// ErrNoSource is returned when neither a catalog file nor URL is configured.
	ErrNoSource constError = "no catalog configured: set --catalog or --catalog-url"
)
