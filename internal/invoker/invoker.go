// Package invoker executes the external computation procedure. Two
// strategies exist: an isolated child process speaking JSON over
// stdin/stdout, and an in-process call against a registered entry point.
// The strategy is selected by configuration, never by request content.
package invoker

import (
	"context"

	"github.com/iwvelando/service-optimizer/pkg/optimization"
)

// Invoker runs the computation procedure for one envelope. A failed
// invocation returns a *ProcedureFailure and is fatal to the run.
type Invoker interface {
	Name() string
	Invoke(ctx context.Context, env optimization.Envelope) (optimization.RawResult, error)
}
