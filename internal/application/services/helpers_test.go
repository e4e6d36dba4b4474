package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/katcli/kat/internal/application/ports"
	"github.com/katcli/kat/internal/domain/entities"
	"github.com/katcli/kat/internal/infrastructure/filesystem"
	"github.com/katcli/kat/internal/infrastructure/globs"
	"github.com/stretchr/testify/require"
)

// makeTree creates files (slash paths) under a fresh, symlink-free temp dir.
func makeTree(t *testing.T, files ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("content of "+f+"\n"), 0o644))
	}
	return root
}

// abs maps slash paths under root to absolute paths.
func abs(root string, rels ...string) []string {
	out := make([]string, len(rels))
	for i, r := range rels {
		out[i] = filepath.Join(root, filepath.FromSlash(r))
	}
	return out
}

func newSelector(t *testing.T, engine string) *SelectFilesUseCase {
	t.Helper()
	compiler, err := globs.New(engine)
	require.NoError(t, err)
	return NewSelectFilesUseCase(filesystem.NewOS(), filesystem.NewWalker(nil), compiler, nil)
}

// countingWalker records calls and delegates to a real walker, optionally
// injecting skipped entries.
type countingWalker struct {
	mu      sync.Mutex
	calls   int
	inner   ports.TreeWalker
	skipped []*entities.EntryAccessError
}

func (w *countingWalker) Walk(ctx context.Context, root string, visit ports.VisitFunc, onSkip ports.SkipFunc) error {
	w.mu.Lock()
	w.calls++
	w.mu.Unlock()
	for _, s := range w.skipped {
		onSkip(s)
	}
	if w.inner == nil {
		return nil
	}
	return w.inner.Walk(ctx, root, visit, onSkip)
}

// RecordingViewer records rendered paths and writes a marker per file.
type RecordingViewer struct {
	Rendered []string
	FailOn   string
	Err      error
}

func (v *RecordingViewer) Name() string { return "recording" }

func (v *RecordingViewer) Render(_ context.Context, path string, stdout, _ io.Writer) error {
	if path == v.FailOn {
		return v.Err
	}
	v.Rendered = append(v.Rendered, path)
	_, err := io.WriteString(stdout, "<"+filepath.Base(path)+">\n")
	return err
}
