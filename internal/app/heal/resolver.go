package heal

import (
	"context"
	"errors"
	"time"

	"wardmind/internal/app/ports"
)

var ErrNoMatchingDirective = errors.New("no matching directive")

// Conflict names a confirmed configuration conflict and the directives whose
// lines should be neutralized.
type Conflict struct {
	Reason     string
	Directives []string
}

// Resolver applies a Conflict to the directive artifact: load, neutralize,
// store, audit, then signal the host to reload. The audit entry is written
// before the reload signal so a crashed reload still leaves a trace.
type Resolver struct {
	Store  ports.DirectiveStore
	Reload ports.ReloadSignaler
	Audit  ports.HealingAuditRepository

	Now func() time.Time
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Resolver) Resolve(ctx context.Context, c Conflict) error {
	text, err := r.Store.Load(ctx)
	if err != nil {
		return err
	}

	rewritten, changed := Neutralize(text, c.Directives)
	if changed == 0 {
		return ErrNoMatchingDirective
	}

	if err := r.Store.Store(ctx, rewritten); err != nil {
		return err
	}
	if err := r.Audit.Append(ctx, ports.HealingRecord{
		Reason:      c.Reason,
		Directives:  c.Directives,
		TriggeredAt: r.now(),
	}); err != nil {
		return err
	}
	return r.Reload.Signal(ctx)
}
