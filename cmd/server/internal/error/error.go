package error

import "errors"

var ErrTypeAssertMismatch = errors.New("type assert mismatched expected type")
