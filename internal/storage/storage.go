package storage

import (
	"fmt"
	"io"
	"time"

	"github.com/IshaanNene/oversight-scraper/internal/config"
	"github.com/IshaanNene/oversight-scraper/internal/types"
)

// Snapshot is the result of one scrape run, ready to be encoded.
type Snapshot struct {
	LastUpdated time.Time
	Source      string
	Incidents   []types.Incident
}

// Encoder is the interface for all output encodings.
type Encoder interface {
	// Encode writes the snapshot to w.
	Encode(w io.Writer, snap *Snapshot) error

	// Name returns the encoding identifier.
	Name() string
}

// NewEncoder returns the encoder for an output format.
func NewEncoder(format string) (Encoder, error) {
	switch format {
	case config.FormatJSON:
		return &JSONEncoder{}, nil
	case config.FormatJS:
		return &JSEncoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, format)
	}
}
