package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Hex represents a hexadecimal-encoded quantity as a string (e.g., "0x1a"),
// the way Ethereum JSON-RPC encodes block numbers, values, and gas fields.
// It provides validation, JSON marshaling/unmarshaling, and conversion to
// int64 or big.Int.
type Hex string

// HexFromString validates the input string and returns a Hex value if valid.
func HexFromString(s string) (Hex, error) {
	if err := validateHex(s); err != nil {
		return "", err
	}
	return Hex(s), nil
}

// HexFromBig encodes a non-negative big.Int as a Hex quantity.
func HexFromBig(v *big.Int) Hex {
	return Hex("0x" + v.Text(16))
}

// validateHex checks whether a string is a valid hexadecimal quantity starting
// with "0x" or "0X". Quantities wider than 64 bits (e.g., wei amounts) are valid.
func validateHex(s string) error {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return fmt.Errorf("hex string must start with 0x")
	}

	if _, ok := new(big.Int).SetString(s[2:], 16); !ok {
		return fmt.Errorf("invalid hexadecimal value: %q", s)
	}

	return nil
}

// MarshalJSON encodes the Hex as a JSON string.
func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(h))
}

// UnmarshalJSON parses and validates a JSON-encoded hexadecimal string.
func (h *Hex) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid hex string: %w", err)
	}

	if err := validateHex(s); err != nil {
		return err
	}

	*h = Hex(s)
	return nil
}

// Add returns a new Hex representing the result of adding n to the current value.
// If the original value is invalid, it treats it as zero.
func (h Hex) Add(n int64) Hex {
	current := h.Int()
	sum := current + n
	return Hex(fmt.Sprintf("0x%x", sum))
}

// Int returns the decoded int64 value from the hexadecimal string.
// If parsing fails or the value is empty, it returns zero. Suitable for
// block numbers and gas counters; use Big for value-sized quantities.
func (h Hex) Int() int64 {
	if len(h) < 3 {
		return 0
	}
	v, _ := strconv.ParseInt(string(h)[2:], 16, 64)
	return v
}

// Big returns the decoded arbitrary-precision value from the hexadecimal
// string. Empty or invalid values decode as zero, never nil.
func (h Hex) Big() *big.Int {
	if len(h) < 3 {
		return new(big.Int)
	}

	v, ok := new(big.Int).SetString(string(h)[2:], 16)
	if !ok {
		return new(big.Int)
	}
	return v
}

// IsZero reports whether the quantity is absent or decodes to zero.
func (h Hex) IsZero() bool {
	return h.Big().Sign() == 0
}
