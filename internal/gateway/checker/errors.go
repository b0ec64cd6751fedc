package checker

import "errors"

var ErrUnknownKind = errors.New("unknown probe kind")
