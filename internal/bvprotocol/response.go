package bvprotocol

import (
	"bufio"
	"io"

	"bvsynth/internal/bvast"
)

// Writer emits one response line per solved (or failed) request.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w for line-oriented response emission.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteSolution prints a witnessing program's surface syntax as the
// response line.
func (w *Writer) WriteSolution(e bvast.Expr) error {
	if _, err := w.w.WriteString(e.String()); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// WriteEmpty emits the empty response line used when a request produced
// no witness (timeout, exhaustion, or a recoverable parse error).
func (w *Writer) WriteEmpty() error {
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}
