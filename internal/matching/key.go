package matching

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// keyTokens is the number of underscore-separated tokens in a composite key:
// location code, sub product, product and the salary ceiling.
const keyTokens = 4

var (
	// ErrInvalidKeyFormat is returned when a composite key is empty or is not
	// made of exactly four underscore-separated tokens.
	ErrInvalidKeyFormat = errors.New("invalid composite key format")
	// ErrInvalidCeilingValue is returned when the last token of a composite
	// key cannot be parsed as a number.
	ErrInvalidCeilingValue = errors.New("invalid ceiling value")
)

// Key is a parsed composite key. Prefix is the category portion
// (locationcode_subproduct_product), Ceiling the numeric last token.
type Key struct {
	Prefix  string
	Ceiling float64
}

// ParseKey splits a raw composite key like "126_5_8_2.6" into its prefix and
// salary ceiling. It is pure: the same input always yields the same key or
// the same error.
func ParseKey(raw string) (Key, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Key{}, fmt.Errorf("%w: key is empty", ErrInvalidKeyFormat)
	}

	tokens := strings.Split(raw, "_")
	if len(tokens) != keyTokens {
		return Key{}, fmt.Errorf("%w: %q must be %d parts separated by '_' (e.g. \"126_5_8_2.6\")",
			ErrInvalidKeyFormat, raw, keyTokens)
	}

	ceiling, err := strconv.ParseFloat(tokens[keyTokens-1], 64)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q in key %q must be a number like 2.6",
			ErrInvalidCeilingValue, tokens[keyTokens-1], raw)
	}

	return Key{
		Prefix:  strings.Join(tokens[:keyTokens-1], "_"),
		Ceiling: ceiling,
	}, nil
}
