package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/savedindex/internal/database"
	"github.com/nao1215/savedindex/internal/model"
)

// JSONWriter outputs summaries and history as indented JSON.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary as a JSON object.
func (w *JSONWriter) Write(summary *model.Summary) (int, error) {
	return w.encode(summary)
}

// WriteHistory outputs the runs as a JSON array.
func (w *JSONWriter) WriteHistory(runs []database.Run) (int, error) {
	if runs == nil {
		runs = []database.Run{}
	}
	return w.encode(runs)
}

func (w *JSONWriter) encode(v any) (int, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
