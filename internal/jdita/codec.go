package jdita

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Decode reads one JSON AST node and validates its shape.
func Decode(r io.Reader) (*Node, error) {
	var n Node

	if err := json.NewDecoder(r).Decode(&n); err != nil {
		return nil, fmt.Errorf("jdita: decode: %w", err)
	}

	if err := Validate(&n); err != nil {
		return nil, err
	}

	return &n, nil
}

// DecodeString is a convenience wrapper for Decode.
func DecodeString(s string) (*Node, error) {
	return Decode(strings.NewReader(s))
}

// Encode writes n as indented JSON.
func Encode(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	return enc.Encode(n)
}

// EncodeString is a convenience wrapper for Encode.
func EncodeString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, n); err != nil {
		return "", err
	}

	return buf.String(), nil
}
