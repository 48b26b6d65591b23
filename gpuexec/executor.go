// Package gpuexec defines the GPU-executor side of the dispatcher boundary
// and a no-op backend for tests and headless runs.
package gpuexec

import "github.com/glaphica/paintcore/protocol"

// Executor turns one protocol.Command into its protocol.Receipt, matching
// a single arm of the GPU-executor's command/receipt correspondence.
type Executor interface {
	Execute(cmd protocol.Command) (protocol.Receipt, error)
}
