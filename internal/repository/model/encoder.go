package model

import (
	"fmt"

	"github.com/safebag-backend/internal/domain/repository"
)

// mapEncoder is a label encoder materialized from the artifact's fitted
// label->code mapping.
type mapEncoder struct {
	forward map[string]int
	reverse map[int]string
}

func newMapEncoder(mapping map[string]int) repository.LabelEncoder {
	enc := &mapEncoder{
		forward: make(map[string]int, len(mapping)),
		reverse: make(map[int]string, len(mapping)),
	}
	for label, code := range mapping {
		enc.forward[label] = code
		enc.reverse[code] = label
	}
	return enc
}

func (e *mapEncoder) Encode(label string) (int, error) {
	code, ok := e.forward[label]
	if !ok {
		return 0, fmt.Errorf("label %q not known to encoder", label)
	}
	return code, nil
}

func (e *mapEncoder) Decode(value int) (string, error) {
	label, ok := e.reverse[value]
	if !ok {
		return "", fmt.Errorf("code %d not known to encoder", value)
	}
	return label, nil
}
