package behavior

import (
	"context"
	"encoding/json"

	"github.com/quarryworks/lode/pkg/domain"
	"github.com/quarryworks/lode/pkg/ports"
)

// Sequence ticks its children in order, one child-tick per Tick. It
// succeeds once every child has succeeded and fails as soon as one child
// fails. The cursor survives a failure unchanged, so retrying the
// sequence resumes at the failing child rather than starting over.
type Sequence struct {
	Children []Action
	Cursor   int
}

// NewSequence builds a sequence over the given children.
func NewSequence(children ...Action) *Sequence {
	return &Sequence{Children: children}
}

func (s *Sequence) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	if s.Cursor >= len(s.Children) {
		s.Cursor = 0
		return domain.ResultSuccess, nil
	}

	res, err := s.Children[s.Cursor].Tick(ctx, rig)
	if err != nil {
		return domain.ResultFailure, err
	}

	switch res {
	case domain.ResultRunning:
		return domain.ResultRunning, nil
	case domain.ResultFailure:
		return domain.ResultFailure, nil
	default:
		s.Cursor++
		if s.Cursor >= len(s.Children) {
			// Reset so the sequence is reusable when repeated.
			s.Cursor = 0
			return domain.ResultSuccess, nil
		}
		return domain.ResultRunning, nil
	}
}

func (s *Sequence) MarshalJSON() ([]byte, error) {
	children, err := marshalChildren(s.Children)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type     string            `json:"type"`
		Cursor   int               `json:"cursor"`
		Children []json.RawMessage `json:"children"`
	}{TypeSequence, s.Cursor, children})
}

// Selector ticks its children in order until one succeeds. A child
// failure advances to the next child; exhausting all children fails the
// selector.
type Selector struct {
	Children []Action
	Cursor   int
}

// NewSelector builds a selector over the given children.
func NewSelector(children ...Action) *Selector {
	return &Selector{Children: children}
}

func (s *Selector) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	if s.Cursor >= len(s.Children) {
		s.Cursor = 0
		return domain.ResultFailure, nil
	}

	res, err := s.Children[s.Cursor].Tick(ctx, rig)
	if err != nil {
		return domain.ResultFailure, err
	}

	switch res {
	case domain.ResultRunning:
		return domain.ResultRunning, nil
	case domain.ResultSuccess:
		s.Cursor = 0
		return domain.ResultSuccess, nil
	default:
		s.Cursor++
		if s.Cursor >= len(s.Children) {
			s.Cursor = 0
			return domain.ResultFailure, nil
		}
		return domain.ResultRunning, nil
	}
}

func (s *Selector) MarshalJSON() ([]byte, error) {
	children, err := marshalChildren(s.Children)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type     string            `json:"type"`
		Cursor   int               `json:"cursor"`
		Children []json.RawMessage `json:"children"`
	}{TypeSelector, s.Cursor, children})
}

// Repeat re-runs its child every time it succeeds and stops when the
// child fails. Combined with Succeed it forms the classic
// "repeat until failure, then carry on" loop. Each child success yields
// ResultRunning, so one Tick still performs at most one rig operation.
type Repeat struct {
	Child Action
}

// NewRepeat builds a repeat-until-failure loop around child.
func NewRepeat(child Action) *Repeat {
	return &Repeat{Child: child}
}

func (r *Repeat) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	res, err := r.Child.Tick(ctx, rig)
	if err != nil {
		return domain.ResultFailure, err
	}

	switch res {
	case domain.ResultRunning:
		return domain.ResultRunning, nil
	case domain.ResultSuccess:
		// Go around again on the next tick.
		return domain.ResultRunning, nil
	default:
		return domain.ResultFailure, nil
	}
}

func (r *Repeat) MarshalJSON() ([]byte, error) {
	child, err := json.Marshal(r.Child)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type  string          `json:"type"`
		Child json.RawMessage `json:"child"`
	}{TypeRepeat, child})
}

// Succeed converts its child's failure into success, leaving Running
// untouched. It never reports failure.
type Succeed struct {
	Child Action
}

// NewSucceed wraps child so its terminal result is always success.
func NewSucceed(child Action) *Succeed {
	return &Succeed{Child: child}
}

func (s *Succeed) Tick(ctx context.Context, rig ports.Rig) (domain.Result, error) {
	res, err := s.Child.Tick(ctx, rig)
	if err != nil {
		return domain.ResultFailure, err
	}
	if res == domain.ResultRunning {
		return domain.ResultRunning, nil
	}
	return domain.ResultSuccess, nil
}

func (s *Succeed) MarshalJSON() ([]byte, error) {
	child, err := json.Marshal(s.Child)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type  string          `json:"type"`
		Child json.RawMessage `json:"child"`
	}{TypeSucceed, child})
}

func marshalChildren(children []Action) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(children))
	for i, c := range children {
		data, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}
