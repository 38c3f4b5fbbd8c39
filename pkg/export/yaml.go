package export

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// WriteYAML writes d as a YAML document.
func WriteYAML(w io.Writer, d *Description) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(err, "encode graph description")
	}
	return enc.Close()
}

// ReadYAML decodes a description previously written by WriteYAML.
func ReadYAML(r io.Reader) (*Description, error) {
	var d Description
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(err, "decode graph description")
	}
	return &d, nil
}
