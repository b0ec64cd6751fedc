package health

import "errors"

var ErrNotServing = errors.New("service is not serving")
