package parser

import (
	"fmt"
	"io"
)

// ParseString parses source text into a Program. It is an alias for Parse
// kept for symmetry with ParseReader.
func ParseString(src string) (*Program, error) {
	return Parse(src)
}

// ParseReader consumes source from an io.Reader and parses it.
func ParseReader(r io.Reader) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Parse(string(data))
}
