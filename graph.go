package evmlink

import (
	"regexp"
	"sort"
)

// placeholderPattern matches any 40-character placeholder token. Both
// generations carry exactly 36 characters between the "__" delimiters, so a
// single fixed-width pattern covers legacy and modern encodings alike.
var placeholderPattern = regexp.MustCompile(`__.{36}__`)

// LibraryReference ties a resolved placeholder token to the library it
// denotes inside one contract's bytecode.
type LibraryReference struct {
	// Library is the resolved library contract name.
	Library string

	// Token is the placeholder as it appears in the bytecode.
	Token string
}

// DependencyGraph is the library dependency structure of one compilation
// unit. It is rebuilt on demand and never mutated after construction.
type DependencyGraph struct {
	// Dependencies maps each contract name to the libraries its bytecode
	// references. Leaf contracts map to an empty list.
	Dependencies map[string][]string

	// References maps each contract name to its resolved placeholder pairs,
	// in lexicographic library order.
	References map[string][]LibraryReference

	// Vertices is the sorted union of declared contract names and resolved
	// library names. A library may be referenced without being declared.
	Vertices []string

	// Unresolved lists placeholders no library could be found for, ordered
	// by contract then token. They create no graph edges.
	Unresolved []UnresolvedPlaceholder
}

// buildDependencyGraph scans every contract's init and runtime bytecode for
// placeholders, resolves each through the unit's resolver, and assembles the
// directed graph library -> dependent.
func buildDependencyGraph(contracts []Contract, resolver *symbolResolver) *DependencyGraph {
	graph := &DependencyGraph{
		Dependencies: make(map[string][]string, len(contracts)),
		References:   make(map[string][]LibraryReference),
	}

	vertexSet := make(map[string]bool, len(contracts))

	for _, contract := range contracts {
		vertexSet[contract.Name] = true

		tokens := scanPlaceholders(contract.InitBytecode, contract.RuntimeBytecode)
		depSet := make(map[string]bool, len(tokens))

		for _, token := range tokens {
			library := resolver.resolve(token, contract.Name, contracts)
			if library == "" {
				graph.Unresolved = append(graph.Unresolved, UnresolvedPlaceholder{
					Contract: contract.Name,
					Token:    token,
				})
				continue
			}

			vertexSet[library] = true
			depSet[library] = true
			graph.References[contract.Name] = append(graph.References[contract.Name], LibraryReference{
				Library: library,
				Token:   token,
			})
		}

		deps := make([]string, 0, len(depSet))
		for library := range depSet {
			deps = append(deps, library)
		}
		sort.Strings(deps)
		graph.Dependencies[contract.Name] = deps
		sort.Slice(graph.References[contract.Name], func(i, j int) bool {
			return graph.References[contract.Name][i].Library < graph.References[contract.Name][j].Library
		})
	}

	// Referenced-but-undeclared libraries become leaf vertices.
	for name := range vertexSet {
		if _, ok := graph.Dependencies[name]; !ok {
			graph.Dependencies[name] = []string{}
		}
		graph.Vertices = append(graph.Vertices, name)
	}
	sort.Strings(graph.Vertices)

	sort.Slice(graph.Unresolved, func(i, j int) bool {
		a, b := graph.Unresolved[i], graph.Unresolved[j]
		if a.Contract != b.Contract {
			return a.Contract < b.Contract
		}
		return a.Token < b.Token
	})

	return graph
}

// scanPlaceholders returns the deduplicated placeholder tokens of a
// contract's bytecode, in first-seen order across init then runtime.
func scanPlaceholders(initBytecode, runtimeBytecode string) []string {
	seen := make(map[string]bool)
	var tokens []string

	for _, bytecode := range []string{initBytecode, runtimeBytecode} {
		for _, token := range placeholderPattern.FindAllString(bytecode, -1) {
			if !seen[token] {
				seen[token] = true
				tokens = append(tokens, token)
			}
		}
	}
	return tokens
}
