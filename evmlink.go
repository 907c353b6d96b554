// Package evmlink resolves and links library references in compiled EVM
// contract bytecode.
//
// Solidity compilers emit unresolved library references as fixed-width
// placeholder tokens embedded directly in the hex bytecode. Before a contract
// can be deployed, every placeholder must be replaced with the address of the
// library it denotes. This package discovers placeholders, resolves them back
// to library names, computes a deployment order for the referenced libraries,
// allocates synthetic addresses when none are supplied, and rewrites the
// bytecode without changing its length.
//
// # Basic Usage
//
// Build a compilation unit from compiled contracts, then autolink:
//
//	unit := evmlink.NewCompilationUnit(evmlink.Compiler{
//	    Family:  "solc",
//	    Version: evmlink.MustParseVersion("0.8.19"),
//	})
//
//	unit.AddContract(evmlink.Contract{
//	    Name:            "Token",
//	    RuntimeBytecode: runtimeHex,
//	    InitBytecode:    initHex,
//	})
//	unit.AddContract(evmlink.Contract{Name: "MathLib", RuntimeBytecode: libHex})
//
//	result, err := unit.Autolink([]string{"Token"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// result.DeploymentOrder lists libraries in dependency order.
//	// result.Linked["Token"] holds the rewritten bytecode.
//
// # Placeholder Encodings
//
// Two placeholder generations exist, both exactly 40 characters wide:
//
//   - Legacy (solc 0.4 and earlier): "__" followed by the library name or a
//     "path:name" locator, truncated to 36 characters and padded with "_".
//     Truncation means two long names can share a token; resolution returns
//     the first deterministic match.
//
//   - Modern (solc 0.5 and later): "__$" + 34 hex characters of the keccak-256
//     digest of the name or "path:name" + "$__". Collisions are negligible.
//
// Placeholders produced by compiler families or versions this package does
// not recognize are reported as unresolved, never guessed.
//
// # Determinism
//
// For a fixed input set the whole pipeline is reproducible: candidate
// contracts are probed in lexicographic order, simultaneously ready libraries
// are scheduled lexicographically (targets follow the caller-supplied order),
// and synthetic addresses are assigned in lexicographic name order from a
// fixed start address.
//
// # Staging
//
// Autolink runs in strict stages: the dependency graph is built completely
// before scheduling, the schedule completes before addresses are allocated,
// and all addresses are known before any bytecode is rewritten. A scheduling
// failure (circular dependency) leaves every bytecode exactly as compiled.
// Compilation units share no state, so distinct units may be processed
// concurrently.
package evmlink
