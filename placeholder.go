package evmlink

import (
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
)

// Placeholder encoding constants.
const (
	// PlaceholderWidth is the exact width of every placeholder token.
	PlaceholderWidth = 40

	// placeholderInnerWidth is the width between the "__" delimiters.
	placeholderInnerWidth = 36

	// modernDigestWidth is the number of keccak-256 hex characters kept in a
	// modern placeholder ("__$" + 34 hex + "$__").
	modernDigestWidth = 34
)

// Generation selects one of the two placeholder encoding schemes.
type Generation uint8

const (
	// GenerationUnknown marks a compiler whose placeholders this package
	// cannot decode. The codec produces no tokens for it.
	GenerationUnknown Generation = iota

	// GenerationLegacy is the truncated-name scheme of solc 0.4 and earlier.
	GenerationLegacy

	// GenerationModern is the keccak-digest scheme of solc 0.5 and later.
	GenerationModern
)

// String returns the generation name.
func (g Generation) String() string {
	switch g {
	case GenerationLegacy:
		return "legacy"
	case GenerationModern:
		return "modern"
	default:
		return "unknown"
	}
}

// PlaceholderSet is the set of placeholder tokens a single library may appear
// as inside dependent bytecode. Depending on how the library was referenced
// at compile time, the compiler keys the placeholder on the bare name, the
// absolute source path, or the path used on the compiler command line.
type PlaceholderSet struct {
	// Basic is the token derived from the library name alone.
	Basic string

	// AbsolutePathVariant is the token derived from "absolutePath:name".
	// Empty when no absolute locator is known.
	AbsolutePathVariant string

	// UsedPathVariant is the token derived from "usedPath:name".
	// Empty when no used locator is known.
	UsedPathVariant string
}

// Contains reports whether token is one of the non-empty members of the set.
func (s PlaceholderSet) Contains(token string) bool {
	if token == "" {
		return false
	}
	return token == s.Basic || token == s.AbsolutePathVariant || token == s.UsedPathVariant
}

// IsEmpty reports whether the set holds no tokens at all.
func (s PlaceholderSet) IsEmpty() bool {
	return s.Basic == "" && s.AbsolutePathVariant == "" && s.UsedPathVariant == ""
}

// Placeholders computes the candidate placeholder tokens for a library.
//
// name is the library's contract name; absoluteLocator and usedLocator are
// its source locators (either may be empty, suppressing that variant).
// An empty name or an unknown generation yields an empty set.
//
// Legacy tokens truncate "locator:name" to 36 characters, so two distinct
// long names can produce the same token. That ambiguity is inherent to the
// encoding; resolution over a sorted candidate list keeps it deterministic.
func Placeholders(name, absoluteLocator, usedLocator string, generation Generation) PlaceholderSet {
	if name == "" {
		return PlaceholderSet{}
	}

	switch generation {
	case GenerationLegacy:
		set := PlaceholderSet{Basic: legacyPlaceholder(name)}
		if absoluteLocator != "" {
			set.AbsolutePathVariant = legacyPlaceholder(absoluteLocator + ":" + name)
		}
		if usedLocator != "" {
			set.UsedPathVariant = legacyPlaceholder(usedLocator + ":" + name)
		}
		return set

	case GenerationModern:
		set := PlaceholderSet{Basic: modernPlaceholder(name)}
		if absoluteLocator != "" {
			set.AbsolutePathVariant = modernPlaceholder(absoluteLocator + ":" + name)
		}
		if usedLocator != "" {
			set.UsedPathVariant = modernPlaceholder(usedLocator + ":" + name)
		}
		return set

	default:
		return PlaceholderSet{}
	}
}

// legacyPlaceholder builds a solc <=0.4 token: "__" + key, truncated to the
// inner width and padded with "_" to 40 characters.
func legacyPlaceholder(key string) string {
	if len(key) > placeholderInnerWidth {
		key = key[:placeholderInnerWidth]
	}

	token := make([]byte, 0, PlaceholderWidth)
	token = append(token, "__"...)
	token = append(token, key...)
	for len(token) < PlaceholderWidth {
		token = append(token, '_')
	}
	return string(token)
}

// modernPlaceholder builds a solc >=0.5 token: "__$" + the first 34 hex
// characters of keccak256(key) + "$__".
func modernPlaceholder(key string) string {
	digest := hex.EncodeToString(crypto.Keccak256([]byte(key)))
	return "__$" + digest[:modernDigestWidth] + "$__"
}
