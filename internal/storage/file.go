package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IshaanNene/oversight-scraper/internal/classify"
	"github.com/IshaanNene/oversight-scraper/internal/types"
)

// --- JSON Encoding ---

// Document is the JSON output layout.
type Document struct {
	LastUpdated    string           `json:"last_updated"`
	Source         string           `json:"source"`
	TotalIncidents int              `json:"total_incidents"`
	Incidents      []types.Incident `json:"incidents"`
}

// JSONEncoder writes the snapshot as an indented JSON document.
type JSONEncoder struct{}

func (e *JSONEncoder) Name() string { return "json" }

func (e *JSONEncoder) Encode(w io.Writer, snap *Snapshot) error {
	incidents := snap.Incidents
	if incidents == nil {
		incidents = []types.Incident{}
	}
	doc := Document{
		LastUpdated:    snap.LastUpdated.Format(time.RFC3339),
		Source:         snap.Source,
		TotalIncidents: len(incidents),
		Incidents:      incidents,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// DecodeJSON reads a document written by JSONEncoder.
func DecodeJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return &doc, nil
}

// --- JS Literal Encoding ---

// JSArrayName is the variable the JS encoding assigns.
const JSArrayName = "REAL_INCIDENT_DATA"

// JSEncoder writes the snapshot as a JavaScript array literal for embedding
// in the dashboard front-end. Categories are reduced to their canonical
// labels and the citizen flag becomes usCitizen.
type JSEncoder struct{}

func (e *JSEncoder) Name() string { return "js" }

func (e *JSEncoder) Encode(w io.Writer, snap *Snapshot) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "const %s = [\n", JSArrayName)
	for i, inc := range snap.Incidents {
		comma := ","
		if i == len(snap.Incidents)-1 {
			comma = ""
		}
		fmt.Fprintf(bw, "  %s%s\n", jsEntry(inc), comma)
	}
	bw.WriteString("];\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write JS: %w", err)
	}
	return nil
}

func jsEntry(inc types.Incident) string {
	sensitive := "null"
	if kind := classify.SensitiveLocationType(inc.SourceTitle, inc.IsSensitiveLocation); kind != "" {
		sensitive = jsString(kind)
	}

	return fmt.Sprintf(
		"{date: %s, city: %s, state: %s, categories: %s, usCitizen: %t, sensitiveLocation: %s, sourceUrl: %s, sourceTitle: %s}",
		jsString(inc.Date),
		jsString(inc.City),
		jsString(inc.State),
		jsStringArray(classify.CanonicalCategories(inc.Categories)),
		inc.IsUSCitizen,
		sensitive,
		jsString(inc.SourceURL),
		jsString(inc.SourceTitle),
	)
}

// jsString quotes s as a JSON string literal, which is also a valid JS
// string literal. <, > and & are left as-is.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func jsStringArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = jsString(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// --- Destination ---

// Write encodes snap to path, or to stdout when path is empty. The parent
// directory of path is created if needed. Errors are *types.StorageError.
func Write(path string, enc Encoder, snap *Snapshot, logger *slog.Logger) error {
	logger = logger.With("component", "storage")

	if path == "" {
		if err := enc.Encode(os.Stdout, snap); err != nil {
			return &types.StorageError{Backend: enc.Name(), Err: err}
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &types.StorageError{Backend: enc.Name(), Err: fmt.Errorf("create output dir: %w", err)}
	}

	f, err := os.Create(path)
	if err != nil {
		return &types.StorageError{Backend: enc.Name(), Err: fmt.Errorf("create output file: %w", err)}
	}

	if err := enc.Encode(f, snap); err != nil {
		f.Close()
		return &types.StorageError{Backend: enc.Name(), Err: err}
	}
	if err := f.Close(); err != nil {
		return &types.StorageError{Backend: enc.Name(), Err: fmt.Errorf("close output file: %w", err)}
	}

	logger.Info("output written", "path", path, "format", enc.Name(), "incidents", len(snap.Incidents))
	return nil
}
