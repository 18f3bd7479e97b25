// Package adapter contains I/O adapters for the scoped CLI.
package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	m "gooze.dev/pkg/scoped/internal/model"
)

// ScriptLoader reads scripted scenarios from disk so the demo command
// can run YAML documents instead of built-in code.
type ScriptLoader interface {
	// Load reads and validates the script at path.
	Load(path string) (m.Script, error)
}

// FileScriptLoader is the concrete ScriptLoader backed by the local
// filesystem.
type FileScriptLoader struct{}

// NewFileScriptLoader constructs a FileScriptLoader.
func NewFileScriptLoader() *FileScriptLoader {
	return &FileScriptLoader{}
}

// Load reads and validates the script at path.
func (l *FileScriptLoader) Load(path string) (m.Script, error) {
	// #nosec G304 - path comes from the user's own --script flag
	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read script", "path", path, "error", err)
		return m.Script{}, fmt.Errorf("failed to read script: %w", err)
	}

	script, err := ParseScript(raw)
	if err != nil {
		slog.Error("Failed to parse script", "path", path, "error", err)
		return m.Script{}, err
	}

	slog.Debug("Loaded script", "path", path, "name", script.Name, "keys", len(script.Keys))

	return script, nil
}

// ParseScript decodes and validates a YAML script document.
func ParseScript(raw []byte) (m.Script, error) {
	var script m.Script
	if err := yaml.Unmarshal(raw, &script); err != nil {
		return m.Script{}, fmt.Errorf("decode script: %w", err)
	}

	if err := validateScript(script); err != nil {
		return m.Script{}, err
	}

	return script, nil
}

func validateScript(script m.Script) error {
	if strings.TrimSpace(script.Name) == "" {
		return errors.New("script.name is required")
	}

	if len(script.Keys) == 0 {
		return errors.New("script.keys must be non-empty")
	}

	declared := make(map[string]struct{}, len(script.Keys))

	for i, decl := range script.Keys {
		name := strings.TrimSpace(decl.Name)
		if name == "" {
			return fmt.Errorf("script.keys[%d].name is required", i)
		}

		if _, ok := declared[name]; ok {
			return fmt.Errorf("script.keys[%d].name must be unique (duplicate %q)", i, name)
		}

		declared[name] = struct{}{}

		if !isKeyTypeAllowed(decl.Type) {
			return fmt.Errorf("script.keys[%d].type unsupported: %q", i, decl.Type)
		}
	}

	return validateScope(script.Scope, "script.scope", declared)
}

func validateScope(node m.ScopeNode, prefix string, declared map[string]struct{}) error {
	for name := range node.Bind {
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("%s.bind refers to undeclared key %q", prefix, name)
		}
	}

	for i, name := range node.Read {
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("%s.read[%d] refers to undeclared key %q", prefix, i, name)
		}
	}

	for i := range node.Children {
		childPrefix := fmt.Sprintf("%s.children[%d]", prefix, i)
		if err := validateScope(node.Children[i], childPrefix, declared); err != nil {
			return err
		}
	}

	return nil
}

func isKeyTypeAllowed(keyType m.KeyType) bool {
	switch keyType {
	case m.KeyString, m.KeyInt, m.KeyBool, m.KeyFloat, "":
		return true
	default:
		return false
	}
}
