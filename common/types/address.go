package types

import (
	"fmt"
	"strings"
)

// MaxAddressLength is the maximal number of characters in an address.
const MaxAddressLength = 128

// ErrInvalidAddress is returned when the address can't be parsed.
var ErrInvalidAddress = NewError(ErrInvalidAmount, "invalid address")

// Address identifies a participant, an operator or a custody account.
type Address string

// ParseAddress validates src and returns it as an Address.
func ParseAddress(src string) (Address, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	if len(src) > MaxAddressLength {
		return "", fmt.Errorf("%w: expected at most %d characters, got %d",
			ErrInvalidAddress, MaxAddressLength, len(src))
	}
	for _, c := range src {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.' || c == ':':
		default:
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidAddress, c)
		}
	}
	return Address(src), nil
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return string(a)
}

// Empty returns true if address is not set.
func (a Address) Empty() bool {
	return a == ""
}

// ShortString returns the first 10 characters of the address for logs.
func (a Address) ShortString() string {
	if len(a) <= 10 {
		return string(a)
	}
	return string(a[:10])
}
