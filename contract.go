package evmlink

import (
	"strconv"
	"strings"
)

// Version is a compiler semantic version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a semantic version string such as "0.8.19".
// Build metadata appended by solc ("0.4.11+commit.68ef5810") is ignored.
func ParseVersion(s string) (*Version, error) {
	s = strings.TrimPrefix(s, "v")
	if i := strings.IndexAny(s, "+-"); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil, &VersionError{Input: s}
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, &VersionError{Input: s}
		}
		nums[i] = n
	}

	return &Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) *Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the version as "major.minor.patch".
func (v *Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

// CompilerFamilySolc is the compiler family whose placeholder encodings this
// package understands. Other families never yield resolvable placeholders.
const CompilerFamilySolc = "solc"

// Compiler identifies the toolchain that produced a compilation unit.
// A nil Version means the version could not be determined; placeholders from
// such a unit are reported unresolved rather than guessed.
type Compiler struct {
	Family  string
	Version *Version
}

// IsSolc returns true if the compiler belongs to the solc family.
func (c Compiler) IsSolc() bool {
	return c.Family == CompilerFamilySolc
}

// Generation returns the placeholder encoding generation for this compiler,
// or GenerationUnknown when the family or version is unrecognized.
func (c Compiler) Generation() Generation {
	if !c.IsSolc() || c.Version == nil {
		return GenerationUnknown
	}
	if c.Version.Major == 0 && c.Version.Minor <= 4 {
		return GenerationLegacy
	}
	return GenerationModern
}

// Contract is one compiled contract as supplied by an upstream build-tool
// adapter. Bytecode fields are hex strings; any "0x" prefix is stripped when
// the contract enters a CompilationUnit.
type Contract struct {
	// Name identifies the contract within its compilation unit.
	Name string

	// InitBytecode is the deployment (constructor) bytecode.
	InitBytecode string

	// RuntimeBytecode is the deployed bytecode.
	RuntimeBytecode string

	// AbsolutePath is the absolute source locator of the defining file.
	AbsolutePath string

	// UsedPath is the locator as passed to the compiler invocation.
	UsedPath string
}

// normalized returns the contract with "0x" bytecode prefixes stripped.
func (c Contract) normalized() Contract {
	c.InitBytecode = strings.TrimPrefix(c.InitBytecode, "0x")
	c.RuntimeBytecode = strings.TrimPrefix(c.RuntimeBytecode, "0x")
	return c
}
