package compare

import (
	"encoding/json"
)

// JSONFormatter formats comparison reports as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for a comparison report
func (jf *JSONFormatter) Format(r *Report) (string, error) {
	if r == nil || r.Result == nil {
		return "", ErrNoResult
	}
	return jf.marshal(r)
}

// FormatValue marshals any result type, such as a purchase or sensitivity result
func (jf *JSONFormatter) FormatValue(v any) (string, error) {
	return jf.marshal(v)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
