package transfer

import "errors"

var (
	// ErrParse indicates the import text is not valid JSON.
	ErrParse = errors.New("invalid JSON")

	// ErrInvalidFormat indicates the import text is JSON but not an object.
	ErrInvalidFormat = errors.New("import data must be a JSON object")

	// ErrUnsupportedVersion indicates an envelope version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported export version")

	// ErrInvalidItem indicates one item of an import failed validation.
	ErrInvalidItem = errors.New("invalid item")
)

// UserMessage returns the text shown to the user for an error returned by
// Import.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrParse):
		return "Failed to parse the JSON data. Please check your input format."
	case errors.Is(err, ErrInvalidFormat):
		return "Invalid JSON data format. Please check your input."
	case errors.Is(err, ErrUnsupportedVersion):
		return "This export was made by a newer version and cannot be imported."
	default:
		return "Import failed: " + err.Error()
	}
}
