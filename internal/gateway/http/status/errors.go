package status

import "errors"

var ErrUnexpectedStatus = errors.New("unexpected HTTP status")
