package schema

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Variant -trimprefix=Variant -output=variant_string.go

// Variant tells where a compiled kind is placed.
type Variant int

const (
	// VariantPlain is placed in mixed content, or is the root.
	VariantPlain Variant = iota
	// VariantBlock is placed in element-only content.
	VariantBlock
)

// VariantFor returns the variant of a child of a parent that does or does
// not allow mixed content.
func VariantFor(parentMixed bool) Variant {
	if parentMixed {
		return VariantPlain
	}

	return VariantBlock
}

// IsBlock reports whether v is the block variant.
func (v Variant) IsBlock() bool { return v == VariantBlock }

// MarshalText renders the variant as "plain" or "block".
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(v.String())), nil
}

// UnmarshalText parses "plain" or "block".
func (v *Variant) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "plain":
		*v = VariantPlain
	case "block":
		*v = VariantBlock
	default:
		return fmt.Errorf("unknown variant %q", text)
	}

	return nil
}
