package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var embeddedTemplates []byte

// Parse decodes a catalog document: a mapping from topic key to a list of
// templates. Topics are returned in AllTopics order, unknown keys last.
func Parse(r io.Reader) ([]Template, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc map[string][]Template
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	var keys []string
	for k := range doc {
		if !TopicKey(k).Valid() {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	ordered := make([]string, 0, len(doc))
	for _, t := range AllTopics() {
		ordered = append(ordered, string(t))
	}
	ordered = append(ordered, keys...)

	var templates []Template
	for _, k := range ordered {
		for _, t := range doc[k] {
			t.Topic = TopicKey(k)
			templates = append(templates, t)
		}
	}
	return templates, nil
}

// Load parses and validates a catalog document. Missing topics are allowed.
func Load(r io.Reader) (*Catalog, error) {
	templates, err := Parse(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(templates, false); err != nil {
		return nil, err
	}
	return New(templates), nil
}

// LoadFile loads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in catalog. If the embedded data fails to parse
// or fails strict validation, the safety-net catalog is returned together
// with the reason. The returned catalog is never nil.
func Default() (*Catalog, error) {
	return fromBytes(embeddedTemplates)
}

func fromBytes(data []byte) (*Catalog, error) {
	templates, err := Parse(bytes.NewReader(data))
	if err == nil {
		err = Validate(templates, true)
	}
	if err != nil {
		return MustSafetyNet(), fmt.Errorf("built-in catalog unusable, using safety net: %w", err)
	}
	return New(templates), nil
}

// Open returns the catalog at path, or the built-in catalog when path is
// empty. On any failure the safety net is returned with the error, so the
// caller always has templates to serve.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	c, err := LoadFile(path)
	if err != nil {
		return MustSafetyNet(), err
	}
	return c, nil
}
