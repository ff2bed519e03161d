package invoker

import "fmt"

// Failure reasons for procedure invocations.
const (
	ReasonCrashed           = "crashed"
	ReasonTimeout           = "timeout"
	ReasonInvalidOutput     = "invalid_output"
	ReasonMissingEntrypoint = "missing_entrypoint"
)

// ProcedureFailure describes why a procedure invocation failed. It is fatal
// to the run; no layer retries it.
type ProcedureFailure struct {
	Reason string
	Detail string
	Stderr string
	Err    error
}

func (f *ProcedureFailure) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("procedure %s: %s", f.Reason, f.Detail)
	}
	return fmt.Sprintf("procedure %s", f.Reason)
}

func (f *ProcedureFailure) Unwrap() error {
	return f.Err
}
