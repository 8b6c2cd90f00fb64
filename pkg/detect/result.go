package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/observability"
	"github.com/dhananjayyy09/Deadlock-Prevention/pkg/snapshot"
)

// Result is the detection report served by the API.
type Result struct {
	WFG         snapshot.WaitFor  `json:"wfg"`
	Cycles      snapshot.CycleSet `json:"cycles"`
	HasDeadlock bool              `json:"has_deadlock"`
	Message     string            `json:"message"`
}

// Analyze derives the wait-for graph, finds its cycles, and packages the
// outcome. The context is passed through to registered observability hooks.
func Analyze(ctx context.Context, s *snapshot.Snapshot) Result {
	observability.Analysis().OnDetectStart(ctx, len(s.Processes))
	start := time.Now()

	wfg := BuildWaitFor(s)
	cycles := FindCycles(wfg)

	res := Result{
		WFG:         wfg,
		Cycles:      cycles,
		HasDeadlock: len(cycles) > 0,
		Message:     "No cycles detected",
	}
	if res.HasDeadlock {
		res.Message = fmt.Sprintf("Found %d cycle(s)", len(cycles))
	}

	observability.Analysis().OnDetectComplete(ctx, len(cycles), res.HasDeadlock, time.Since(start))
	return res
}

// Prediction is the Banker's algorithm report served by the API.
type Prediction struct {
	Safe     bool   `json:"safe"`
	Sequence []int  `json:"sequence,omitempty"`
	Message  string `json:"message"`
	Details  string `json:"details"`
}

// Predict runs the safety check and packages the outcome.
func Predict(ctx context.Context, s *snapshot.Snapshot) Prediction {
	observability.Analysis().OnPredictStart(ctx, len(s.Processes))
	start := time.Now()

	safe, seq := IsSafe(s)
	p := Prediction{Safe: safe, Sequence: seq}
	if safe {
		p.Message = "SAFE"
		p.Details = "System is in a safe state"
	} else {
		p.Message = "UNSAFE"
		p.Details = "System may lead to deadlock"
	}

	observability.Analysis().OnPredictComplete(ctx, safe, time.Since(start))
	return p
}

// Recovery is the preemption report served by the API.
type Recovery struct {
	Victims     []int              `json:"victims"`
	Message     string             `json:"message"`
	NewSnapshot *snapshot.Snapshot `json:"new_snapshot"`
}

// Recover detects deadlock and, when present, preempts one victim per
// cycle. NewSnapshot is always a deep copy, identical to the input when
// nothing needed preempting.
func Recover(ctx context.Context, s *snapshot.Snapshot) Recovery {
	start := time.Now()

	victims := ChooseVictims(FindCycles(BuildWaitFor(s)))
	rec := Recovery{
		Victims:     victims,
		Message:     "No recovery needed",
		NewSnapshot: Preempt(s, victims),
	}
	if len(victims) > 0 {
		rec.Message = fmt.Sprintf("Preempted processes: %v", victims)
	}

	observability.Analysis().OnRecoverComplete(ctx, len(victims), time.Since(start))
	return rec
}
