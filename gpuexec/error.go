package gpuexec

import "errors"

var errUnknownCommandKind = errors.New("gpuexec: unknown command kind")
