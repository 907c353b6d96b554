package evmlink

import "sort"

// symbolResolver maps placeholder tokens found in one contract's bytecode to
// the library contract they denote. One resolver belongs to exactly one
// compilation unit; its memo cache is never shared across units.
type symbolResolver struct {
	compiler Compiler

	// cache memoizes resolutions per (contract, token). The empty string
	// records a definitive "unresolved" so it is not recomputed.
	cache map[resolutionKey]string
}

type resolutionKey struct {
	contract string
	token    string
}

func newSymbolResolver(compiler Compiler) *symbolResolver {
	return &symbolResolver{
		compiler: compiler,
		cache:    make(map[resolutionKey]string),
	}
}

// resolve returns the name of the library the token stands for, or "" when
// the token cannot be attributed to any contract in the unit.
//
// contractName is the contract whose bytecode contains the token; contracts
// is the full contract list of the compilation unit. Candidates are probed in
// lexicographic name order so resolution is reproducible, including the
// legacy truncation-collision case where more than one candidate could match.
func (r *symbolResolver) resolve(token, contractName string, contracts []Contract) string {
	key := resolutionKey{contract: contractName, token: token}
	if name, ok := r.cache[key]; ok {
		return name
	}

	name := r.lookup(token, contractName, contracts)
	r.cache[key] = name
	return name
}

func (r *symbolResolver) lookup(token, contractName string, contracts []Contract) string {
	generation := r.compiler.Generation()
	if generation == GenerationUnknown {
		return ""
	}

	candidates := make([]Contract, 0, len(contracts))
	for _, c := range contracts {
		if c.Name != contractName {
			candidates = append(candidates, c)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	for _, c := range candidates {
		set := Placeholders(c.Name, c.AbsolutePath, c.UsedPath, generation)
		if set.Contains(token) {
			return c.Name
		}
	}

	// Very old solc releases encode placeholders this codec cannot rebuild.
	// With exactly two contracts in the unit the reference can only denote
	// the other one; anything larger stays unresolved.
	if r.compiler.Version != nil && r.compiler.Version.Minor < 4 && len(contracts) == 2 && len(candidates) == 1 {
		return candidates[0].Name
	}

	return ""
}
