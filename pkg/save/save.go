// Package save persists catalog artifacts to disk. Writes are atomic: data
// lands in a temp file in the destination directory and is renamed into
// place, so a killed run never leaves a half-written catalog under the
// final name.
package save

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/adtaxonomy/taxsync/pkg/constants"
	"github.com/adtaxonomy/taxsync/pkg/errors"
)

// Format selects the artifact encoding.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Ext returns the file extension for the format, with leading dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat parses a format name. JSON is the default catalog contract;
// YAML is an opt-in alternative.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatJSON, &errors.ConfigError{Component: "save", Message: "unknown format " + s}
}

// Filename rewrites a .json artifact name for the format, so
// "iab_2x.json" stays as-is for JSON and becomes "iab_2x.yaml" for YAML.
func (f Format) Filename(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)] + f.Ext()
}

// File marshals v in the given format and writes it atomically to path,
// creating parent directories as needed.
func File(path string, v any, format Format) error {
	var data []byte
	var err error
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}
	return Raw(path, data)
}

// Raw writes bytes verbatim and atomically to path, creating parent
// directories as needed. Used for audit copies of upstream files, which
// must be preserved byte-for-byte.
func Raw(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
