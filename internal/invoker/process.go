package invoker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/iwvelando/service-optimizer/pkg/constants"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

// ProcessInvoker runs the procedure as a child process. The envelope is
// written to the child's stdin as a single JSON document and the stream is
// closed; the child's entire stdout must parse as a single JSON document.
// stderr is captured for diagnostics only and never parsed as data.
type ProcessInvoker struct {
	Path    string
	Args    []string
	Timeout time.Duration
	logger  *zap.Logger
}

// NewProcessInvoker constructs a ProcessInvoker for the given procedure path.
func NewProcessInvoker(logger *zap.Logger, path string, args []string, timeout time.Duration) *ProcessInvoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = constants.DefaultProcedureTimeout
	}
	return &ProcessInvoker{Path: path, Args: args, Timeout: timeout, logger: logger}
}

func (p *ProcessInvoker) Name() string {
	return constants.StrategyProcess
}

// Invoke executes the procedure once. A non-zero exit maps to "crashed", an
// elapsed timeout to "timeout" (the child is killed), and unparseable stdout
// to "invalid_output". There are no retries at this layer.
func (p *ProcessInvoker) Invoke(ctx context.Context, env optimization.Envelope) (optimization.RawResult, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, &ProcedureFailure{
			Reason: ReasonCrashed,
			Detail: fmt.Sprintf("encode envelope: %v", err),
			Err:    err,
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, p.Path, p.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	p.logger.Debug("procedure process finished",
		zap.String("op", "invoker.Process.Invoke"),
		zap.String("path", p.Path),
		zap.Duration("elapsed", elapsed),
		zap.Bool("failed", runErr != nil),
	)

	if runErr != nil {
		// CommandContext kills the child on deadline, so expiry here means
		// the process is already terminated.
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, &ProcedureFailure{
				Reason: ReasonTimeout,
				Detail: fmt.Sprintf("procedure exceeded timeout of %s", p.Timeout),
				Stderr: stderr.String(),
				Err:    runErr,
			}
		}

		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return nil, &ProcedureFailure{
				Reason: ReasonCrashed,
				Detail: fmt.Sprintf("procedure exited with status %d", exitErr.ExitCode()),
				Stderr: stderr.String(),
				Err:    runErr,
			}
		}

		return nil, &ProcedureFailure{
			Reason: ReasonCrashed,
			Detail: fmt.Sprintf("failed to start procedure: %v", runErr),
			Stderr: stderr.String(),
			Err:    runErr,
		}
	}

	raw, err := optimization.DecodeRawResult(stdout.Bytes())
	if err != nil {
		return nil, &ProcedureFailure{
			Reason: ReasonInvalidOutput,
			Detail: fmt.Sprintf("procedure output is not valid JSON: %v", err),
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	return raw, nil
}
