package driver

import (
	"context"
	"time"

	"specgraph/internal/observ"
	"specgraph/internal/trace"
)

// phases ties the timer, the tracer and the observer together so each
// pipeline step opens and closes all three at once.
type phases struct {
	timer    *observ.Timer
	observer PhaseObserver
}

type phase struct {
	ctx     context.Context
	span    *trace.Span
	done    func(string)
	name    string
	started time.Time
	obs     PhaseObserver
}

func (p phases) begin(ctx context.Context, name string) *phase {
	ctx, sp := trace.Start(ctx, trace.ScopePhase, name)
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return &phase{
		ctx:     ctx,
		span:    sp,
		done:    p.timer.Track(name),
		name:    name,
		started: time.Now(),
		obs:     p.observer,
	}
}

func (ph *phase) end(note string) {
	ph.span.End(note)
	ph.done(note)
	if ph.obs != nil {
		ph.obs(PhaseEvent{Name: ph.name, Status: PhaseEnd, Elapsed: time.Since(ph.started), Note: note})
	}
}
