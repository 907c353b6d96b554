package evmlink

import (
	"encoding/json"
	"sort"
)

// CompilationUnit is the set of contracts produced by one compiler
// invocation, together with the compiler's identity. Units are independent:
// each owns its resolver cache and derived graphs, so distinct units may be
// processed concurrently. A single unit is not safe for concurrent use.
type CompilationUnit struct {
	compiler  Compiler
	contracts []Contract
	index     map[string]int
	resolver  *symbolResolver
}

// NewCompilationUnit creates an empty compilation unit for the given
// compiler identity.
func NewCompilationUnit(compiler Compiler) *CompilationUnit {
	return &CompilationUnit{
		compiler: compiler,
		index:    make(map[string]int),
		resolver: newSymbolResolver(compiler),
	}
}

// AddContract adds a compiled contract to the unit, stripping any "0x"
// bytecode prefixes. Contract names must be unique within a unit.
func (u *CompilationUnit) AddContract(contract Contract) error {
	if _, exists := u.index[contract.Name]; exists {
		return ErrDuplicateContract
	}

	u.index[contract.Name] = len(u.contracts)
	u.contracts = append(u.contracts, contract.normalized())
	return nil
}

// Compiler returns the unit's compiler identity.
func (u *CompilationUnit) Compiler() Compiler {
	return u.compiler
}

// Contract returns the named contract and whether it exists in the unit.
func (u *CompilationUnit) Contract(name string) (Contract, bool) {
	i, ok := u.index[name]
	if !ok {
		return Contract{}, false
	}
	return u.contracts[i], true
}

// ContractNames returns the unit's contract names in insertion order.
func (u *CompilationUnit) ContractNames() []string {
	names := make([]string, len(u.contracts))
	for i, c := range u.contracts {
		names[i] = c.Name
	}
	return names
}

// DependencyGraph scans every contract's bytecode, resolves the placeholders
// found, and returns the unit's library dependency graph. The graph is
// rebuilt on each call from the current contract set.
func (u *CompilationUnit) DependencyGraph() *DependencyGraph {
	return buildDependencyGraph(u.contracts, u.resolver)
}

// Schedule computes the library deployment order for the given target
// contracts. Every target must belong to the unit. A cyclic dependency graph
// yields a *CircularDependencyError.
func (u *CompilationUnit) Schedule(targets []string) (*Schedule, error) {
	if err := u.checkTargets(targets); err != nil {
		return nil, err
	}
	return scheduleDeployment(u.DependencyGraph().Dependencies, targets)
}

func (u *CompilationUnit) checkTargets(targets []string) error {
	for _, name := range targets {
		if _, ok := u.index[name]; !ok {
			return ErrUnknownTarget
		}
	}
	return nil
}

// LinkedBytecode holds a contract's bytecode after placeholder substitution.
type LinkedBytecode struct {
	Init    string
	Runtime string
}

// LinkResult is the outcome of Autolink for one compilation unit.
type LinkResult struct {
	// DeploymentOrder lists the needed libraries, prerequisites first.
	DeploymentOrder []string

	// LibraryAddresses maps each addressed library to its address. It covers
	// allocated and caller-supplied addresses alike.
	LibraryAddresses map[string]uint64

	// Linked holds the rewritten bytecode of every contract in the unit.
	// Contracts with no addressed placeholders carry their bytecode
	// unchanged.
	Linked map[string]LinkedBytecode

	// Unresolved reports placeholders no library could be attributed to.
	// Their bytecode positions are left exactly as compiled.
	Unresolved []UnresolvedPlaceholder
}

// Autolink runs the full linking pipeline for the given target contracts:
// dependency graph, deployment schedule, address allocation, and bytecode
// rewriting, in that order, each stage completing before the next begins.
//
// On a scheduling failure no bytecode is rewritten and the error is
// returned; the original compiled bytecode is never touched in place.
func (u *CompilationUnit) Autolink(targets []string, opts ...LinkOption) (*LinkResult, error) {
	if err := u.checkTargets(targets); err != nil {
		return nil, err
	}

	config := defaultLinkConfig()
	for _, opt := range opts {
		opt(config)
	}

	graph := u.DependencyGraph()

	schedule, err := scheduleDeployment(graph.Dependencies, targets)
	if err != nil {
		return nil, err
	}

	addresses := make(map[string]uint64, len(schedule.LibrariesNeeded))
	if config.allocate {
		addresses = allocateAddresses(schedule.LibrariesNeeded, config.startAddress)
	}
	for name, address := range config.addresses {
		addresses[name] = address
	}

	result := &LinkResult{
		DeploymentOrder:  schedule.DeploymentOrder,
		LibraryAddresses: addresses,
		Linked:           make(map[string]LinkedBytecode, len(u.contracts)),
		Unresolved:       graph.Unresolved,
	}

	for _, contract := range u.contracts {
		refs := graph.References[contract.Name]
		result.Linked[contract.Name] = LinkedBytecode{
			Init:    linkBytecode(contract.InitBytecode, refs, addresses),
			Runtime: linkBytecode(contract.RuntimeBytecode, refs, addresses),
		}
	}

	return result, nil
}

// Export serializes the result into the artifact consumed by the export
// layer: {"deployment_order": [...], "library_addresses": {...}}. Addresses
// are emitted as integers, or as 0x-prefixed EVM address strings when
// hexAddresses is set.
func (r *LinkResult) Export(hexAddresses bool) ([]byte, error) {
	artifact := struct {
		DeploymentOrder  []string       `json:"deployment_order"`
		LibraryAddresses map[string]any `json:"library_addresses"`
	}{
		DeploymentOrder:  r.DeploymentOrder,
		LibraryAddresses: make(map[string]any, len(r.LibraryAddresses)),
	}
	if artifact.DeploymentOrder == nil {
		artifact.DeploymentOrder = []string{}
	}

	for name, address := range r.LibraryAddresses {
		if hexAddresses {
			artifact.LibraryAddresses[name] = AddressHex(address)
		} else {
			artifact.LibraryAddresses[name] = address
		}
	}

	return json.MarshalIndent(artifact, "", "  ")
}

// NeededLibraries returns the sorted names of the libraries the result's
// deployment order covers.
func (r *LinkResult) NeededLibraries() []string {
	names := make([]string, len(r.DeploymentOrder))
	copy(names, r.DeploymentOrder)
	sort.Strings(names)
	return names
}
