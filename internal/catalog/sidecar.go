package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/marco/cinema/internal/scanner"
)

// SidecarExt is the extension of the metadata file stored next to a movie.
const SidecarExt = ".txt"

// Sidecar holds the fields a metadata file may set. A nil field was absent
// (or held a value of the wrong JSON type) and leaves the entry unchanged.
type Sidecar struct {
	Title     *string
	Format    *string
	Theater   *string
	Category  *string
	Encrypted *bool
}

// SidecarPath returns the metadata file location for a movie.
func SidecarPath(moviePath string) string {
	return scanner.SiblingPath(moviePath, SidecarExt)
}

// ReadSidecar loads the metadata file for a movie. It returns (nil, nil) when
// there is no file; an error means the file exists but could not be used.
func ReadSidecar(moviePath string) (*Sidecar, error) {
	path := SidecarPath(moviePath)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	return ParseSidecar(data)
}

// ParseSidecar decodes a metadata document: a JSON object whose recognised
// keys are decoded independently. Unknown keys are ignored.
func ParseSidecar(data []byte) (*Sidecar, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse metadata JSON: %w", err)
	}
	if fields == nil {
		return nil, errors.New("failed to parse metadata JSON: document is null")
	}

	sc := &Sidecar{
		Title:    stringField(fields, "title"),
		Format:   stringField(fields, "format"),
		Theater:  stringField(fields, "theater"),
		Category: stringField(fields, "category"),
	}
	if raw, ok := fields["encrypted"]; ok {
		var b bool
		if json.Unmarshal(raw, &b) == nil {
			sc.Encrypted = &b
		}
	}
	return sc, nil
}

func stringField(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// Apply overlays the sidecar fields onto an entry. Setting a format also
// decides Is3D, replacing the path-based guess.
func (sc *Sidecar) Apply(e *MovieEntry) {
	if sc.Title != nil {
		e.Title = *sc.Title
	}
	if sc.Format != nil {
		e.Format = FormatFromString(*sc.Format)
		e.Is3D = e.Format.IsStereo()
	}
	if sc.Theater != nil {
		e.Theater = *sc.Theater
	}
	if sc.Category != nil {
		e.Category = CategoryFromString(*sc.Category)
	}
	if sc.Encrypted != nil {
		e.Encrypted = *sc.Encrypted
	}
}
