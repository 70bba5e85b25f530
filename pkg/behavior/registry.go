package behavior

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/quarryworks/lode/pkg/domain"
)

// Built-in node type tags.
const (
	TypeSequence = "sequence"
	TypeSelector = "selector"
	TypeRepeat   = "repeat"
	TypeSucceed  = "succeed"
	TypeDig      = "dig"
	TypeClear    = "clear"
	TypeMove     = "move"
	TypeTurn     = "turn"
)

// DecodeFunc reconstructs an action from its tagged JSON encoding. The
// registry is passed through so composite nodes can decode their children
// recursively, including node types registered by other packages.
type DecodeFunc func(r *Registry, raw json.RawMessage) (Action, error)

// Registry maps node type tags to decoders. Encoding needs no registry
// (every node knows how to marshal itself); decoding does, because the
// type tag is the only clue to the concrete Go type.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]DecodeFunc
}

// NewRegistry creates a registry with all built-in node types installed.
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[string]DecodeFunc)}
	r.Register(TypeSequence, decodeSequence)
	r.Register(TypeSelector, decodeSelector)
	r.Register(TypeRepeat, decodeRepeat)
	r.Register(TypeSucceed, decodeSucceed)
	r.Register(TypeDig, decodeLeaf(TypeDig))
	r.Register(TypeClear, decodeLeaf(TypeClear))
	r.Register(TypeMove, decodeLeaf(TypeMove))
	r.Register(TypeTurn, decodeLeaf(TypeTurn))
	return r
}

// Register adds a decoder for a node type. An existing decoder for the
// same tag is overwritten.
func (r *Registry) Register(nodeType string, fn DecodeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[nodeType] = fn
}

// Decode reconstructs an action from its tagged JSON encoding.
func (r *Registry) Decode(raw json.RawMessage) (Action, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("behavior: invalid node encoding: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("behavior: node is missing a type tag")
	}

	r.mu.RLock()
	fn, ok := r.decoders[env.Type]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("behavior: unknown node type %q", env.Type)
	}
	return fn(r, raw)
}

// decodeParams maps the loosely-typed JSON object onto a params struct.
func decodeParams(raw json.RawMessage, out any) error {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	return mapstructure.Decode(m, out)
}

func decodeChildren(r *Registry, raw []json.RawMessage) ([]Action, error) {
	children := make([]Action, len(raw))
	for i, c := range raw {
		child, err := r.Decode(c)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		children[i] = child
	}
	return children, nil
}

type compositeJSON struct {
	Cursor   int               `json:"cursor"`
	Children []json.RawMessage `json:"children"`
}

func decodeSequence(r *Registry, raw json.RawMessage) (Action, error) {
	var node compositeJSON
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	children, err := decodeChildren(r, node.Children)
	if err != nil {
		return nil, err
	}
	return &Sequence{Children: children, Cursor: node.Cursor}, nil
}

func decodeSelector(r *Registry, raw json.RawMessage) (Action, error) {
	var node compositeJSON
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	children, err := decodeChildren(r, node.Children)
	if err != nil {
		return nil, err
	}
	return &Selector{Children: children, Cursor: node.Cursor}, nil
}

type wrapperJSON struct {
	Child json.RawMessage `json:"child"`
}

func decodeRepeat(r *Registry, raw json.RawMessage) (Action, error) {
	var node wrapperJSON
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	child, err := r.Decode(node.Child)
	if err != nil {
		return nil, err
	}
	return &Repeat{Child: child}, nil
}

func decodeSucceed(r *Registry, raw json.RawMessage) (Action, error) {
	var node wrapperJSON
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	child, err := r.Decode(node.Child)
	if err != nil {
		return nil, err
	}
	return &Succeed{Child: child}, nil
}

func decodeLeaf(nodeType string) DecodeFunc {
	return func(_ *Registry, raw json.RawMessage) (Action, error) {
		var params struct {
			Direction string `mapstructure:"direction"`
		}
		if err := decodeParams(raw, &params); err != nil {
			return nil, err
		}
		dir, err := domain.ParseDirection(params.Direction)
		if err != nil {
			return nil, fmt.Errorf("behavior: %s node: %w", nodeType, err)
		}

		switch nodeType {
		case TypeDig:
			return &Dig{Direction: dir}, nil
		case TypeClear:
			return &Clear{Direction: dir}, nil
		case TypeMove:
			return &Move{Direction: dir}, nil
		case TypeTurn:
			return NewTurn(dir)
		}
		return nil, fmt.Errorf("behavior: unexpected leaf type %q", nodeType)
	}
}
