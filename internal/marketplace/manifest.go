package marketplace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Manifest is a loaded marketplace document. Data keeps the raw decoded JSON
// so unknown fields survive a fix-mode rewrite untouched.
type Manifest struct {
	Path string
	Data map[string]any
}

// LoadManifest reads and decodes the manifest at path.
func LoadManifest(fsys FS, path string) (*Manifest, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &Manifest{Path: path, Data: data}, nil
}

// Plugins returns the decoded plugins sequence. ok is false when the field
// is absent or not a JSON array.
func (m *Manifest) Plugins() (plugins []any, ok bool) {
	raw, present := m.Data["plugins"]
	if !present {
		return nil, false
	}
	plugins, ok = raw.([]any)
	return plugins, ok
}

// Save rewrites the manifest in place as pretty-printed JSON with a trailing
// newline. HTML escaping is off so URLs and text survive the rewrite
// verbatim.
func (m *Manifest) Save() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m.Data); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(m.Path, buf.Bytes(), 0o644)
}
