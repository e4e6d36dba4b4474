package services

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// FileEnv defines the variables available to a --where expression.
type FileEnv struct {
	Path string `expr:"path"`
	Rel  string `expr:"rel"`
	Name string `expr:"name"`
	Ext  string `expr:"ext"`
	Dir  string `expr:"dir"`
	Size int64  `expr:"size"`
}

// FileFilter narrows an existing selection with an expr program. It runs
// after include/exclude matching and never widens a selection.
type FileFilter struct {
	program *vm.Program
	source  string
}

// CompileFileFilter compiles expression once. An empty expression yields a
// nil filter, which keeps everything.
func CompileFileFilter(expression string) (*FileFilter, error) {
	if expression == "" {
		return nil, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(FileEnv{}),
		expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w\nExample: ext == '.go' && size < 10000", err)
	}

	return &FileFilter{program: program, source: expression}, nil
}

// Source returns the expression text.
func (f *FileFilter) Source() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Keep evaluates the program against env.
func (f *FileFilter) Keep(env FileEnv) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}

	output, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("where expression error on %s: %w", env.Path, err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("where expression did not return boolean: %v", output)
	}
	return result, nil
}
