package invoker

import (
	"context"
	"fmt"

	"github.com/iwvelando/service-optimizer/pkg/constants"
	"github.com/iwvelando/service-optimizer/pkg/optimization"
	"go.uber.org/zap"
)

// Entrypoint is a procedure callable in-process. It receives the envelope as
// a native value with no JSON round-trip and returns the same loosely typed
// result shape the process strategy decodes from stdout.
type Entrypoint func(ctx context.Context, env optimization.Envelope) (optimization.RawResult, error)

// Module is a named collection of entry points registered for in-process
// invocation. Resolution prefers "optimize" and falls back to "main".
type Module map[string]Entrypoint

// InProcessInvoker calls a registered entry point synchronously.
type InProcessInvoker struct {
	module Module
	logger *zap.Logger
}

// NewInProcessInvoker constructs an InProcessInvoker over the given module.
func NewInProcessInvoker(logger *zap.Logger, module Module) *InProcessInvoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InProcessInvoker{module: module, logger: logger}
}

func (p *InProcessInvoker) Name() string {
	return constants.StrategyInProcess
}

// Invoke resolves the entry point and calls it. Absence of both "optimize"
// and "main" fails with missing_entrypoint; an error returned by the entry
// point maps to "crashed".
func (p *InProcessInvoker) Invoke(ctx context.Context, env optimization.Envelope) (optimization.RawResult, error) {
	entry, name := p.resolve()
	if entry == nil {
		return nil, &ProcedureFailure{
			Reason: ReasonMissingEntrypoint,
			Detail: "module defines neither an optimize nor a main entry point",
		}
	}

	p.logger.Debug("invoking in-process procedure",
		zap.String("op", "invoker.InProcess.Invoke"),
		zap.String("entrypoint", name),
	)

	raw, err := entry(ctx, env)
	if err != nil {
		return nil, &ProcedureFailure{
			Reason: ReasonCrashed,
			Detail: fmt.Sprintf("entry point %s returned an error: %v", name, err),
			Err:    err,
		}
	}
	if raw == nil {
		raw = optimization.RawResult{}
	}
	return raw, nil
}

func (p *InProcessInvoker) resolve() (Entrypoint, string) {
	for _, name := range []string{"optimize", "main"} {
		if entry, ok := p.module[name]; ok && entry != nil {
			return entry, name
		}
	}
	return nil, ""
}
