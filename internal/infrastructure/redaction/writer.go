package redaction

import (
	"bytes"
	"io"
)

// Writer scrubs text one complete line at a time before passing it on. A
// trailing partial line is held until the next newline or Close. Secrets
// spanning lines are not detected.
type Writer struct {
	underlying io.Writer
	redactor   *Redactor
	pending    []byte
}

// NewWriter returns a redacting writer in front of w.
func (r *Redactor) NewWriter(w io.Writer) io.WriteCloser {
	return &Writer{underlying: w, redactor: r}
}

// Write buffers p and emits every complete line, redacted.
//
// The returned count is len(p) on success, whatever length the redacted
// text has.
func (w *Writer) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)

	i := bytes.LastIndexByte(w.pending, '\n')
	if i < 0 {
		return len(p), nil
	}
	err := w.emit(w.pending[:i+1])
	w.pending = append(w.pending[:0], w.pending[i+1:]...)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close flushes the trailing partial line. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	if len(w.pending) == 0 {
		return nil
	}
	err := w.emit(w.pending)
	w.pending = w.pending[:0]
	return err
}

func (w *Writer) emit(chunk []byte) error {
	_, err := io.WriteString(w.underlying, w.redactor.ScrubString(string(chunk)))
	return err
}
