package scenario

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"gooze.dev/pkg/scoped"
	m "gooze.dev/pkg/scoped/internal/model"
)

// scripted walks a scope tree described by a YAML document instead of
// code, declaring the document's keys and binding, reading, and
// spawning as the tree says.
type scripted struct {
	script m.Script
	keys   map[string]scoped.AnyKey
}

// NewScripted builds a scenario from a parsed script.
func NewScripted(script m.Script) (Scenario, error) {
	keys := make(map[string]scoped.AnyKey, len(script.Keys))

	for i, decl := range script.Keys {
		key, err := declareScriptKey(decl)
		if err != nil {
			return nil, fmt.Errorf("keys[%d]: %w", i, err)
		}

		if _, ok := keys[decl.Name]; ok {
			return nil, fmt.Errorf("keys[%d]: duplicate key %q", i, decl.Name)
		}

		keys[decl.Name] = key
	}

	return &scripted{script: script, keys: keys}, nil
}

func (s *scripted) Name() string { return s.script.Name }

func (s *scripted) Synopsis() string {
	return fmt.Sprintf("scripted walk declaring %d keys", len(s.keys))
}

func (s *scripted) Run(ctx context.Context, emit func(m.Event)) error {
	n := newNarrator(s.Name(), emit)
	return s.walk(ctx, n, s.script.Scope, 1)
}

func (s *scripted) walk(ctx context.Context, n *narrator, node m.ScopeNode, depth int) error {
	carrier, err := s.buildCarrier(node)
	if err != nil {
		return err
	}

	label := node.Label
	if label == "" {
		label = fmt.Sprintf("scope-%d", depth)
	}

	return scoped.Run(ctx, carrier, func(inner context.Context) error {
		n.scope("main", depth, "entered %s", label)

		if err := s.readKeys(inner, n, "main", depth, node.Read); err != nil {
			return err
		}

		if node.Spawn {
			if err := s.readFromSpawned(inner, n, depth, node.Read); err != nil {
				return err
			}
		}

		for i := range node.Children {
			if err := s.walk(inner, n, node.Children[i], depth+1); err != nil {
				return err
			}
		}

		if len(node.Children) > 0 {
			// The children are gone; the same reads show this node's
			// values back in force.
			if err := s.readKeys(inner, n, "main", depth, node.Read); err != nil {
				return err
			}
		}

		n.scope("main", depth, "leaving %s", label)

		return nil
	})
}

func (s *scripted) buildCarrier(node m.ScopeNode) (scoped.Carrier, error) {
	names := make([]string, 0, len(node.Bind))
	for name := range node.Bind {
		names = append(names, name)
	}

	sort.Strings(names)

	carrier := scoped.NewCarrier()

	for _, name := range names {
		key, ok := s.keys[name]
		if !ok {
			return scoped.Carrier{}, fmt.Errorf("bind refers to undeclared key %q", name)
		}

		value, err := parseScriptValue(key, node.Bind[name])
		if err != nil {
			return scoped.Carrier{}, fmt.Errorf("bind %q: %w", name, err)
		}

		carrier, err = carrier.WithAny(key, value)
		if err != nil {
			return scoped.Carrier{}, fmt.Errorf("bind %q: %w", name, err)
		}
	}

	return carrier, nil
}

func (s *scripted) readKeys(ctx context.Context, n *narrator, unit string, depth int, reads []string) error {
	for _, name := range reads {
		key, ok := s.keys[name]
		if !ok {
			return fmt.Errorf("read refers to undeclared key %q", name)
		}

		if v, bound := scoped.Value(ctx, key); bound {
			n.read(unit, depth, "read %s = %v", name, v)
		} else {
			n.read(unit, depth, "read %s: unbound", name)
		}
	}

	return nil
}

// readFromSpawned repeats the node's reads from a fresh goroutine that
// receives only a snapshot, so non-inheritable keys come back unbound.
func (s *scripted) readFromSpawned(ctx context.Context, n *narrator, depth int, reads []string) error {
	unit := fmt.Sprintf("spawned-%d", depth)
	n.spawn("main", depth, "repeating the reads from a spawned goroutine")

	snap := scoped.Capture(ctx)
	done := make(chan error, 1)

	go func() {
		done <- snap.Run(ctx, func(taskCtx context.Context) error {
			return s.readKeys(taskCtx, n, unit, depth, reads)
		})
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func declareScriptKey(decl m.KeyDecl) (scoped.AnyKey, error) {
	if decl.Name == "" {
		return nil, errors.New("name is required")
	}

	var opts []scoped.KeyOption
	if decl.Inheritable != nil && !*decl.Inheritable {
		opts = append(opts, scoped.NotInherited())
	}

	switch decl.Type {
	case m.KeyString, "":
		return scoped.Declare[string](decl.Name, opts...), nil
	case m.KeyInt:
		return scoped.Declare[int](decl.Name, opts...), nil
	case m.KeyBool:
		return scoped.Declare[bool](decl.Name, opts...), nil
	case m.KeyFloat:
		return scoped.Declare[float64](decl.Name, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported key type %q", decl.Type)
	}
}

// parseScriptValue converts a raw script value to the key's declared
// type.
func parseScriptValue(key scoped.AnyKey, raw string) (any, error) {
	switch key.ValueType().Kind() {
	case reflect.String:
		return raw, nil
	case reflect.Int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("value %q is not an int", raw)
		}

		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a bool", raw)
		}

		return v, nil
	case reflect.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not a float", raw)
		}

		return v, nil
	default:
		return nil, fmt.Errorf("unsupported key type %s", key.ValueType())
	}
}
