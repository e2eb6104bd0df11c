package edge

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig  = errors.New("invalid transformer config")
	ErrMalformedEvent = errors.New("malformed viewer-request event")
)

// Transformer decides what happens to a viewer request. Implementations hold
// only immutable configuration so they may be called concurrently.
type Transformer interface {
	Transform(req Request) Decision
}

// HandleEvent decodes a viewer-request event, applies t and encodes the
// resulting request or response object.
func HandleEvent(t Transformer, payload []byte) ([]byte, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	out, err := json.Marshal(t.Transform(event.Request))
	if err != nil {
		return nil, fmt.Errorf("encoding decision: %w", err)
	}

	return out, nil
}
