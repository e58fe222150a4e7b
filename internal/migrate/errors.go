package migrate

import "errors"

// ErrUnrecognizedShape is returned for stored values that are malformed JSON
// or match none of the known entry layouts.
var ErrUnrecognizedShape = errors.New("unrecognized entry shape")
