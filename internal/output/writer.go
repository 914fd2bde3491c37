package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer handles streaming NDJSON output to a file or io.Writer.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	encoder   *json.Encoder
	count     int
	closeFunc func() error
}

// NewWriter creates a new NDJSON writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	// Captions and descriptions routinely contain & and < which should stay readable.
	enc.SetEscapeHTML(false)
	return &Writer{
		output:  w,
		encoder: enc,
	}
}

// NewFileWriter creates a new NDJSON writer that writes to a file,
// truncating any previous export. The caller must call Close.
func NewFileWriter(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := NewWriter(file)
	w.closeFunc = file.Close
	return w, nil
}

// Write writes a single record as one line.
func (w *Writer) Write(record any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying writer if it's a file. Closing twice is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		err := w.closeFunc()
		w.closeFunc = nil
		return err
	}
	return nil
}
