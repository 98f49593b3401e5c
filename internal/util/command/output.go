package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Print.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const OutputFlag = "output"

// Print renders v to w as JSON or YAML.
func Print(w io.Writer, format string, v any) error {
	var (
		out []byte
		err error
	)

	switch format {
	case FormatJSON, "":
		out, err = json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(v)
	default:
		return errors.Errorf("unknown output format %q, use %s or %s", format, FormatJSON, FormatYAML)
	}

	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}

	_, err = fmt.Fprintln(w, string(out))

	return err
}
