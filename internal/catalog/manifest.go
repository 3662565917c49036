package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.schema.json
var manifestSchemaJSON []byte

//go:embed builtin.json
var builtinManifest []byte

const manifestSchemaURL = "schema://flagquiz/manifest.json"

// Format selects the encoding of a manifest.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Manifest lists the flags available for a region.
type Manifest struct {
	Region string   `json:"region" yaml:"region"`
	Flags  []string `json:"flags" yaml:"flags"`
}

// ManifestError indicates a manifest that could not be decoded or does not
// conform to the manifest schema.
type ManifestError struct {
	Source string
	Err    error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("invalid catalog manifest %s: %v", e.Source, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// manifestSchema compiles the embedded manifest schema on first use.
func manifestSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(manifestSchemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(manifestSchemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(manifestSchemaURL)
	})
	return compiledSchema, schemaErr
}

// ParseManifest decodes and validates a manifest, then builds its Catalog.
func ParseManifest(data []byte, format Format, source string) (*Catalog, error) {
	var doc any
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, &ManifestError{Source: source, Err: fmt.Errorf("unsupported format %q", format)}
	}
	if err != nil {
		return nil, &ManifestError{Source: source, Err: err}
	}

	schema, err := manifestSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &ManifestError{Source: source, Err: err}
	}

	var m Manifest
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, &ManifestError{Source: source, Err: err}
	}
	return New(m.Region, m.Flags)
}

// LoadManifestFile reads a manifest from disk. The format is chosen by file
// extension: .yaml and .yml are YAML, anything else is JSON.
func LoadManifestFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data, formatFor(path), path)
}

// Builtin returns the catalog embedded in the binary.
func Builtin() (*Catalog, error) {
	return ParseManifest(builtinManifest, FormatJSON, "builtin")
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
