package preprocess

import "errors"

// errNoLoader is returned by resolve when the driver didn't supply a
// Loader; a compile with no includes never triggers it.
var errNoLoader = errors.New("preprocess: no loader configured")
