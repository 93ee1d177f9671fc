package app

import (
	"context"
	"fmt"

	"tableflip.dev/dayplan/pkg/task"
)

// MutationState tracks an optimistic change.
type MutationState int

const (
	// Applied means the cache changed and the gateway has not answered.
	Applied MutationState = iota
	// Confirmed means the gateway accepted the change.
	Confirmed
	// RolledBack means the gateway refused and the cache was restored.
	RolledBack
)

func (s MutationState) String() string {
	switch s {
	case Applied:
		return "applied"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled back"
	}
	return fmt.Sprintf("MutationState(%d)", int(s))
}

// Mutation is one optimistic change: the cache as it was before, and the
// remote call that makes the change stick. A nil Mutation is a no-op.
type Mutation struct {
	p        *Planner
	ID       string
	snapshot []task.Task
	commit   func(ctx context.Context) error
	notice   Notice
	state    MutationState
}

// State reports where the mutation is.
func (m *Mutation) State() MutationState {
	if m == nil {
		return Confirmed
	}
	return m.state
}

// Notice is what the user is told if the change is rolled back.
func (m *Mutation) Notice() Notice {
	if m == nil {
		return ""
	}
	return m.notice
}

// Settle sends the change to the gateway. On failure the cache is restored
// to its pre-mutation snapshot, a notice is raised and the error returned.
// Settling twice has no further effect.
func (m *Mutation) Settle(ctx context.Context) error {
	if m == nil || m.state != Applied {
		return nil
	}
	if err := m.commit(ctx); err != nil {
		m.p.Cache.Replace(m.snapshot)
		m.state = RolledBack
		m.p.notify(m.notice)
		return fmt.Errorf("app: %s: %w", m.ID, err)
	}
	m.state = Confirmed
	m.p.backup()
	return nil
}

func (p *Planner) begin(id string, notice Notice, apply func(task.Task), commit func(ctx context.Context) error) *Mutation {
	if p.Gateway == nil {
		return nil
	}
	t, ok := p.Cache.Get(id)
	if !ok {
		return nil
	}
	m := &Mutation{
		p:        p,
		ID:       id,
		snapshot: p.Cache.Snapshot(),
		commit:   commit,
		notice:   notice,
	}
	apply(t)
	return m
}

// BeginToggle flips completion locally. It returns nil when id is not cached.
func (p *Planner) BeginToggle(id string) *Mutation {
	var patch task.Patch
	return p.begin(id, NoticeSyncFailed, func(t task.Task) {
		done := !t.Completed
		patch.Completed = &done
		t.Completed = done
		p.Cache.Put(t)
	}, func(ctx context.Context) error {
		_, err := p.Gateway.Update(ctx, id, patch)
		return err
	})
}

// BeginDelete removes the task locally. It returns nil when id is not cached.
func (p *Planner) BeginDelete(id string) *Mutation {
	return p.begin(id, NoticeDeleteFailed, func(task.Task) {
		p.Cache.Remove(id)
	}, func(ctx context.Context) error {
		return p.Gateway.Delete(ctx, id)
	})
}

// BeginEdit applies patch locally. It returns nil when id is not cached or
// the patch is empty.
func (p *Planner) BeginEdit(id string, patch task.Patch) *Mutation {
	if patch.Empty() {
		return nil
	}
	return p.begin(id, NoticeSyncFailed, func(t task.Task) {
		p.Cache.Put(patch.Apply(t))
	}, func(ctx context.Context) error {
		_, err := p.Gateway.Update(ctx, id, patch)
		return err
	})
}
