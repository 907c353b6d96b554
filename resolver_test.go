package evmlink

import "testing"

func modernSolc() Compiler {
	return Compiler{Family: CompilerFamilySolc, Version: &Version{Major: 0, Minor: 8, Patch: 19}}
}

func legacySolc(minor int) Compiler {
	return Compiler{Family: CompilerFamilySolc, Version: &Version{Major: 0, Minor: minor, Patch: 0}}
}

func TestResolverModern(t *testing.T) {
	contracts := []Contract{
		{Name: "Token"},
		{Name: "MathLib", AbsolutePath: "/src/math.sol", UsedPath: "math.sol"},
		{Name: "SafeLib"},
	}
	resolver := newSymbolResolver(modernSolc())

	t.Run("resolves a basic token to its library", func(t *testing.T) {
		token := Placeholders("MathLib", "", "", GenerationModern).Basic
		if got := resolver.resolve(token, "Token", contracts); got != "MathLib" {
			t.Errorf("Expected MathLib, got %q", got)
		}
	})

	t.Run("resolves a path variant token", func(t *testing.T) {
		token := Placeholders("MathLib", "/src/math.sol", "math.sol", GenerationModern).UsedPathVariant
		if got := resolver.resolve(token, "Token", contracts); got != "MathLib" {
			t.Errorf("Expected MathLib, got %q", got)
		}
	})

	t.Run("never resolves a token to the contract it was found in", func(t *testing.T) {
		token := Placeholders("Token", "", "", GenerationModern).Basic
		if got := resolver.resolve(token, "Token", contracts); got != "" {
			t.Errorf("Expected unresolved, got %q", got)
		}
	})

	t.Run("unknown token stays unresolved", func(t *testing.T) {
		token := Placeholders("Phantom", "", "", GenerationModern).Basic
		if got := resolver.resolve(token, "Token", contracts); got != "" {
			t.Errorf("Expected unresolved, got %q", got)
		}
	})
}

func TestResolverMemoization(t *testing.T) {
	contracts := []Contract{{Name: "Token"}, {Name: "MathLib"}}
	resolver := newSymbolResolver(modernSolc())
	token := Placeholders("MathLib", "", "", GenerationModern).Basic

	if got := resolver.resolve(token, "Token", contracts); got != "MathLib" {
		t.Fatalf("Expected MathLib, got %q", got)
	}

	t.Run("second resolution is served from the cache", func(t *testing.T) {
		if len(resolver.cache) != 1 {
			t.Fatalf("Expected 1 cache entry, got %d", len(resolver.cache))
		}
		// A later lookup must not depend on the candidate list anymore.
		if got := resolver.resolve(token, "Token", nil); got != "MathLib" {
			t.Errorf("Expected cached MathLib, got %q", got)
		}
	})

	t.Run("unresolved outcomes are cached too", func(t *testing.T) {
		miss := Placeholders("Phantom", "", "", GenerationModern).Basic
		resolver.resolve(miss, "Token", contracts)
		if len(resolver.cache) != 2 {
			t.Errorf("Expected 2 cache entries, got %d", len(resolver.cache))
		}
	})
}

func TestResolverLegacyFallback(t *testing.T) {
	t.Run("two-contract unit falls back to the other contract", func(t *testing.T) {
		contracts := []Contract{{Name: "Consumer"}, {Name: "OldLib"}}
		resolver := newSymbolResolver(legacySolc(3))

		// solc 0.3 placeholders cannot be rebuilt from the name alone, so
		// the token will not match any candidate set.
		token := "__unrecognizable_legacy_reference_______"
		if got := resolver.resolve(token, "Consumer", contracts); got != "OldLib" {
			t.Errorf("Expected OldLib, got %q", got)
		}
	})

	t.Run("fallback is not applied to three-contract units", func(t *testing.T) {
		contracts := []Contract{{Name: "Consumer"}, {Name: "OldLib"}, {Name: "OtherLib"}}
		resolver := newSymbolResolver(legacySolc(3))

		token := "__unrecognizable_legacy_reference_______"
		if got := resolver.resolve(token, "Consumer", contracts); got != "" {
			t.Errorf("Expected unresolved, got %q", got)
		}
	})

	t.Run("fallback is not applied at minor version 4", func(t *testing.T) {
		contracts := []Contract{{Name: "Consumer"}, {Name: "OldLib"}}
		resolver := newSymbolResolver(legacySolc(4))

		token := "__unrecognizable_legacy_reference_______"
		if got := resolver.resolve(token, "Consumer", contracts); got != "" {
			t.Errorf("Expected unresolved, got %q", got)
		}
	})
}

func TestResolverLegacyMatching(t *testing.T) {
	contracts := []Contract{
		{Name: "Consumer"},
		{Name: "MathLib", AbsolutePath: "/src/math.sol"},
	}
	resolver := newSymbolResolver(legacySolc(4))

	token := Placeholders("MathLib", "/src/math.sol", "", GenerationLegacy).AbsolutePathVariant
	if got := resolver.resolve(token, "Consumer", contracts); got != "MathLib" {
		t.Errorf("Expected MathLib, got %q", got)
	}
}

func TestResolverDeterministicOrder(t *testing.T) {
	// Two candidates whose legacy tokens collide: the lexicographically
	// smaller name must win regardless of declaration order.
	long := "AVeryLongSharedLibraryNamePrefixThat"
	contracts := []Contract{
		{Name: long + "Zeta"},
		{Name: "Consumer"},
		{Name: long + "Alpha"},
	}
	resolver := newSymbolResolver(legacySolc(4))
	token := Placeholders(long+"Zeta", "", "", GenerationLegacy).Basic

	if got := resolver.resolve(token, "Consumer", contracts); got != long+"Alpha" {
		t.Errorf("Expected first deterministic match %q, got %q", long+"Alpha", got)
	}
}

func TestResolverUnknownCompilers(t *testing.T) {
	contracts := []Contract{{Name: "Token"}, {Name: "MathLib"}}
	token := Placeholders("MathLib", "", "", GenerationModern).Basic

	t.Run("non-solc family never resolves", func(t *testing.T) {
		resolver := newSymbolResolver(Compiler{Family: "vyper", Version: &Version{Major: 0, Minor: 3, Patch: 7}})
		if got := resolver.resolve(token, "Token", contracts); got != "" {
			t.Errorf("Expected unresolved, got %q", got)
		}
	})

	t.Run("missing version never resolves", func(t *testing.T) {
		resolver := newSymbolResolver(Compiler{Family: CompilerFamilySolc})
		if got := resolver.resolve(token, "Token", contracts); got != "" {
			t.Errorf("Expected unresolved, got %q", got)
		}
	})
}
