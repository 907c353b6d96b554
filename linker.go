package evmlink

import (
	"strconv"
	"strings"
)

// linkBytecode replaces every addressed placeholder in a bytecode string with
// its library's address and returns the rewritten string. The replacement
// occupies exactly the placeholder's width, so the output is always the same
// length as the input: byte offsets inside the bytecode stay valid.
//
// References whose library has no entry in addresses are left untouched, and
// relinking already-linked bytecode is a no-op, so the operation is safe to
// repeat with partial or empty address maps.
func linkBytecode(bytecode string, references []LibraryReference, addresses map[string]uint64) string {
	for _, ref := range references {
		address, ok := addresses[ref.Library]
		if !ok {
			continue
		}
		bytecode = strings.ReplaceAll(bytecode, ref.Token, addressField(address, len(ref.Token)))
	}
	return bytecode
}

// addressField renders an address as lowercase hex occupying exactly width
// characters: zero-padded on the left when short, low-order digits kept when
// too wide for the field.
func addressField(address uint64, width int) string {
	field := strconv.FormatUint(address, 16)
	if len(field) > width {
		return field[len(field)-width:]
	}
	return strings.Repeat("0", width-len(field)) + field
}
