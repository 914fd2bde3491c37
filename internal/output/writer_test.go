package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Compile-time check that Writer implements RecordWriter
var _ RecordWriter = (*Writer)(nil)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	if writer == nil {
		t.Fatal("NewWriter returned nil")
	}
	if writer.output != &buf {
		t.Error("Writer output doesn't match provided buffer")
	}
	if writer.count != 0 {
		t.Errorf("Initial count should be 0, got %d", writer.count)
	}
}

func TestWriter_Write(t *testing.T) {
	tests := []struct {
		name    string
		records []EntryRecord
		want    []string
	}{
		{
			name:    "single record",
			records: []EntryRecord{{Title: "About", Body: "Bakery"}},
			want:    []string{`{"title":"About","body":"Bakery"}`},
		},
		{
			name: "multiple records",
			records: []EntryRecord{
				{Title: "A", Body: "one"},
				{Title: "B", Body: "two"},
			},
			want: []string{
				`{"title":"A","body":"one"}`,
				`{"title":"B","body":"two"}`,
			},
		},
		{
			name:    "html characters stay literal",
			records: []EntryRecord{{Title: "Pão & Café", Body: "<b>20%</b>"}},
			want:    []string{`{"title":"Pão & Café","body":"<b>20%</b>"}`},
		},
		{
			name:    "empty records",
			records: []EntryRecord{},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writer := NewWriter(&buf)

			for _, record := range tt.records {
				if err := writer.Write(record); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
			}

			if writer.Count() != len(tt.records) {
				t.Errorf("Count mismatch: got %d, want %d", writer.Count(), len(tt.records))
			}

			out := strings.TrimSpace(buf.String())
			if out == "" && len(tt.want) == 0 {
				return
			}

			lines := strings.Split(out, "\n")
			if len(lines) != len(tt.want) {
				t.Fatalf("Line count mismatch: got %d, want %d", len(lines), len(tt.want))
			}
			for i, line := range lines {
				if line != tt.want[i] {
					t.Errorf("Line %d mismatch:\ngot:  %s\nwant: %s", i, line, tt.want[i])
				}
			}
		})
	}
}

func TestWriter_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	numGoroutines := 10
	recordsPerGoroutine := 100
	totalRecords := numGoroutines * recordsPerGoroutine

	errCh := make(chan error, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			for j := 0; j < recordsPerGoroutine; j++ {
				if err := writer.Write(EntryRecord{Title: "t", Body: "concurrent"}); err != nil {
					errCh <- err
					return
				}
			}
			errCh <- nil
		}()
	}
	for i := 0; i < numGoroutines; i++ {
		if err := <-errCh; err != nil {
			t.Fatalf("Concurrent write failed: %v", err)
		}
	}

	if writer.Count() != totalRecords {
		t.Errorf("Count mismatch: got %d, want %d", writer.Count(), totalRecords)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != totalRecords {
		t.Errorf("Line count mismatch: got %d, want %d", len(lines), totalRecords)
	}
	for i, line := range lines {
		var record EntryRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Errorf("Invalid JSON at line %d: %v", i, err)
		}
	}
}

func TestNewFileWriter(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "export.ndjson")

	writer, err := NewFileWriter(filename)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer writer.Close()

	records := []BusinessRecord{
		{Name: "Acme", Colors: []string{"#fff"}},
		{Name: "Globex", Colors: []string{}},
	}
	for _, r := range records {
		if err := writer.Write(r); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != len(records) {
		t.Fatalf("Line count mismatch: got %d, want %d", len(lines), len(records))
	}
	for i, line := range lines {
		var got BusinessRecord
		if err := json.Unmarshal([]byte(line), &got); err != nil {
			t.Fatalf("Failed to parse JSON at line %d: %v", i, err)
		}
		if got.Name != records[i].Name {
			t.Errorf("Name mismatch at line %d: got %q, want %q", i, got.Name, records[i].Name)
		}
	}
}

func TestNewFileWriter_Error(t *testing.T) {
	_, err := NewFileWriter(filepath.Join(t.TempDir(), "missing", "export.ndjson"))
	if err == nil {
		t.Error("Expected error for non-existent directory, got nil")
	}
}

func TestWriter_WriteError(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(&buf)

	if err := writer.Write(make(chan int)); err == nil {
		t.Error("Expected error when writing non-marshalable data")
	}
	if writer.Count() != 0 {
		t.Errorf("failed write must not be counted, got %d", writer.Count())
	}
}
