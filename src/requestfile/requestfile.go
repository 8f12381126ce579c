// Package requestfile reads writing requests from TOML or YAML documents.
package requestfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	werrors "writer/src/errors"
	"writer/src/prompt"
)

// Format names a request document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", werrors.ErrUnsupportedFileType, path)
}

// Load reads the request stored at path. Keys missing from the document keep
// the defaults of prompt.NewRequest. The form is not validated here.
func Load(path string) (prompt.WritingRequest, error) {
	return LoadOver(path, prompt.NewRequest("", ""))
}

// LoadOver is like Load but keys missing from the document keep the values
// of base.
func LoadOver(path string, base prompt.WritingRequest) (prompt.WritingRequest, error) {
	format, err := FormatFor(path)
	if err != nil {
		return prompt.WritingRequest{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return prompt.WritingRequest{}, werrors.WrapWithContext(err, "failed to open request file")
	}
	defer f.Close()

	req, err := DecodeOver(f, format, base)
	if err != nil {
		return prompt.WritingRequest{}, werrors.WrapWithContext(err, "failed to read request file %s", path)
	}
	return req, nil
}

// Decode reads one request document from r over the prompt.NewRequest
// defaults.
func Decode(r io.Reader, format Format) (prompt.WritingRequest, error) {
	return DecodeOver(r, format, prompt.NewRequest("", ""))
}

// DecodeOver reads one request document from r over base. Slices in base
// are not shared with the result. Keys that name no request field are an
// error, so a misspelt key is not silently dropped.
func DecodeOver(r io.Reader, format Format, base prompt.WritingRequest) (prompt.WritingRequest, error) {
	req := base
	req.Characters = append([]string(nil), base.Characters...)
	req.Constraints = append([]string(nil), base.Constraints...)

	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&req)
		if err != nil {
			return prompt.WritingRequest{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return prompt.WritingRequest{}, fmt.Errorf("%w: %s", werrors.ErrUnknownField, strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&req); err != nil && err != io.EOF {
			return prompt.WritingRequest{}, err
		}
	default:
		return prompt.WritingRequest{}, fmt.Errorf("%w: %q", werrors.ErrUnsupportedFileType, format)
	}
	return req, nil
}
