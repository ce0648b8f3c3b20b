package formdef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and merges every JSON or YAML overlay file it finds. The
// same step or field configured in two files is an error. A nil fsys yields an
// empty overlay.
func LoadFS(fsys fs.FS) (Overlay, error) {
	overlay := Overlay{}
	if fsys == nil {
		return overlay, nil
	}

	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(p) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", p, err)
		}
		doc, err := Parse(data, p)
		if err != nil {
			return err
		}
		return overlay.merge(doc, p)
	})
	if err != nil {
		return Overlay{}, err
	}
	return overlay, nil
}

// LoadFile reads a single overlay file from disk.
func LoadFile(name string) (Overlay, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Overlay{}, fmt.Errorf("formdef: read %s: %w", name, err)
	}
	doc, err := Parse(data, filepath.Base(name))
	if err != nil {
		return Overlay{}, err
	}
	overlay := Overlay{}
	if err := overlay.merge(doc, name); err != nil {
		return Overlay{}, err
	}
	return overlay, nil
}

// Parse decodes one overlay document. JSON is detected by its leading brace;
// anything else is read as YAML. Unknown keys are rejected in both formats.
func Parse(data []byte, source string) (Overlay, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Overlay{}, fmt.Errorf("formdef: file %s is empty", source)
	}

	var doc Overlay
	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Overlay{}, fmt.Errorf("formdef: parse %s: %w", source, err)
		}
		return doc, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(trimmed))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Overlay{}, fmt.Errorf("formdef: parse %s: %w", source, err)
	}
	return doc, nil
}

func (o *Overlay) merge(doc Overlay, source string) error {
	if o.sources == nil {
		o.sources = make(map[string]string)
	}
	claim := func(key string) error {
		if prev, ok := o.sources[key]; ok {
			return fmt.Errorf("formdef: %s configured in both %s and %s", key, prev, source)
		}
		o.sources[key] = source
		return nil
	}

	if doc.Form != (FormOverlay{}) {
		if err := claim("form"); err != nil {
			return err
		}
		o.Form = doc.Form
	}
	for idx, step := range doc.Steps {
		if err := claim(fmt.Sprintf("step %d", idx)); err != nil {
			return err
		}
		if o.Steps == nil {
			o.Steps = make(map[int]StepOverlay)
		}
		o.Steps[idx] = step
	}
	for name, field := range doc.Fields {
		key := strings.TrimSpace(name)
		if key == "" {
			return fmt.Errorf("formdef: %s declares a field with an empty name", source)
		}
		if err := claim("field " + key); err != nil {
			return err
		}
		if o.Fields == nil {
			o.Fields = make(map[string]FieldOverlay)
		}
		o.Fields[key] = field
	}
	return nil
}

func isOverlayFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
