package output

import (
	"encoding/json"

	"github.com/orglens/orglens/internal/core"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatResult marshals the validated result.
func (f *JSONFormatter) FormatResult(result *core.ValidatedResult) (string, error) {
	if result == nil {
		return "", nil
	}

	if f != nil && f.Indent {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
