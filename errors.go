// Package evmlink resolves and links library references in compiled EVM
// contract bytecode.
package evmlink

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrDuplicateContract indicates a contract name was added to a
	// compilation unit twice.
	ErrDuplicateContract = errors.New("evmlink: duplicate contract name in compilation unit")

	// ErrUnknownTarget indicates a target contract name is not part of the
	// compilation unit.
	ErrUnknownTarget = errors.New("evmlink: target contract not found in compilation unit")
)

// VersionError indicates a compiler version string could not be parsed.
type VersionError struct {
	Input string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("evmlink: invalid compiler version %q", e.Input)
}

// CircularDependencyError indicates the library dependency graph contains at
// least one cycle, so no deployment order exists. Remaining holds the names
// of every vertex that could not be scheduled, sorted; the cycle is contained
// in that set but its exact membership is not computed.
type CircularDependencyError struct {
	Remaining []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("evmlink: circular dependency among contracts: %s",
		strings.Join(e.Remaining, ", "))
}

// newCircularDependencyError builds the error with a sorted vertex set so the
// message is reproducible.
func newCircularDependencyError(remaining map[string]bool) *CircularDependencyError {
	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	return &CircularDependencyError{Remaining: names}
}

// UnresolvedPlaceholder records a placeholder token that could not be mapped
// to any library in the compilation unit. It is a report, not an error: the
// token is left in the bytecode and the owning contract stays unlinked until
// an address is supplied some other way.
type UnresolvedPlaceholder struct {
	// Contract is the name of the contract whose bytecode holds the token.
	Contract string

	// Token is the 40-character placeholder as found in the bytecode.
	Token string
}

func (u UnresolvedPlaceholder) String() string {
	return fmt.Sprintf("%s: unresolved placeholder %s", u.Contract, u.Token)
}
