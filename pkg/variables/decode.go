package variables

import (
	"encoding/json"
	"fmt"
	"io"
)

// envelope is the full REST response shape.
type envelope struct {
	Status *int   `json:"status"`
	Error  bool   `json:"error"`
	Meta   *Graph `json:"meta"`
}

// Decode reads a snapshot from r. Both the API envelope and the bare meta
// object are accepted.
func Decode(r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// Unmarshal parses a snapshot from data. See [Decode].
func Unmarshal(data []byte) (*Graph, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if env.Error {
		return nil, fmt.Errorf("decode snapshot: response reports an error")
	}

	g := env.Meta
	if g == nil {
		g = &Graph{}
		if err := json.Unmarshal(data, g); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
	}
	if g.Collections == nil {
		g.Collections = make(map[string]*Collection)
	}
	if g.Variables == nil {
		g.Variables = make(map[string]*Variable)
	}
	return g, nil
}
