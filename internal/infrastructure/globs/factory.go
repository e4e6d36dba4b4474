package globs

import (
	"fmt"

	"github.com/katcli/kat/internal/application/ports"
)

// Engine names accepted by New.
const (
	EngineDoublestar = "doublestar"
	EngineGobwas     = "gobwas"
)

// New returns the glob engine registered under name. An empty name selects
// the default doublestar engine.
func New(name string) (ports.GlobCompiler, error) {
	switch name {
	case "", EngineDoublestar:
		return NewDoublestarCompiler(), nil
	case EngineGobwas:
		return NewGobwasCompiler(), nil
	default:
		return nil, fmt.Errorf("unknown glob engine: %s (supported: %v)", name, Engines())
	}
}

// Engines lists the available engine names.
func Engines() []string {
	return []string{EngineDoublestar, EngineGobwas}
}
