package config

import (
	hjson "github.com/hjson/hjson-go/v4"
)

// hjsonParser lets koanf read hand-written HJSON files: comments, unquoted
// keys and optional commas are accepted.
type hjsonParser struct{}

func (hjsonParser) Unmarshal(b []byte) (map[string]any, error) {
	out := make(map[string]any)
	if err := hjson.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (hjsonParser) Marshal(m map[string]any) ([]byte, error) {
	return hjson.Marshal(m)
}
