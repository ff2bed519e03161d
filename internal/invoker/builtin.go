package invoker

import (
	"context"

	"github.com/iwvelando/service-optimizer/pkg/optimization"
)

// BuiltinModule returns the reference procedure bundled with the service. It
// serves the in-process strategy when no external procedure is configured:
// it projects a gently improving series from the mean of the supplied
// history and reports the overall improvement percentage.
func BuiltinModule() Module {
	return Module{
		"optimize": builtinOptimize,
	}
}

func builtinOptimize(ctx context.Context, env optimization.Envelope) (optimization.RawResult, error) {
	baseline := 100.0
	if len(env.History) > 0 {
		sum := 0.0
		for _, point := range env.History {
			sum += point.Value
		}
		baseline = sum / float64(len(env.History))
	}

	rate := 0.02
	values := make([]interface{}, 0, env.WindowDays)
	value := baseline
	for day := 1; day <= env.WindowDays; day++ {
		value = value * (1 - rate)
		values = append(values, value)
	}

	improvement := 0.0
	if env.WindowDays > 0 && baseline != 0 {
		improvement = (baseline - value) / baseline * 100
	}

	return optimization.RawResult{
		"optimized_values":       values,
		"improvement_rate":       rate,
		"final_value":            value,
		"improvement_percentage": improvement,
	}, nil
}
