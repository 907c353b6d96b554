package evmlink

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DefaultStartAddress is the first synthetic address handed out when the
// caller does not choose one. The value is a sentinel picked to stand out in
// a disassembly; it is not a real network address.
const DefaultStartAddress uint64 = 0xdeadbeef

// allocateAddresses assigns consecutive synthetic addresses to the given
// libraries, starting at start, in lexicographic name order. The mapping is
// fully determined by the input set and start address, so repeated runs over
// the same unit produce identical build artifacts.
func allocateAddresses(libraries map[string]bool, start uint64) map[string]uint64 {
	addresses := make(map[string]uint64, len(libraries))

	next := start
	for _, name := range sortedNames(libraries) {
		addresses[name] = next
		next++
	}
	return addresses
}

// AddressHex renders a synthetic address as a 0x-prefixed, 20-byte EVM
// address string, the form expected by deployment tooling.
func AddressHex(address uint64) string {
	return common.BigToAddress(new(big.Int).SetUint64(address)).Hex()
}
