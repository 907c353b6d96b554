package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/branched-services/go-evmlink"
)

func writeUnitFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unit.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadUnit(t *testing.T) {
	path := writeUnitFile(t, `{
		"compiler": {"family": "solc", "version": "0.8.19+commit.7dd6d404"},
		"contracts": [
			{"name": "Token", "runtime_bytecode": "0x6080"},
			{"name": "MathLib", "runtime_bytecode": "6080"}
		]
	}`)

	unit, err := loadUnit(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	t.Run("compiler identity is parsed", func(t *testing.T) {
		compiler := unit.Compiler()
		if !compiler.IsSolc() {
			t.Errorf("Expected solc, got %q", compiler.Family)
		}
		if compiler.Version == nil || compiler.Version.Minor != 8 {
			t.Errorf("Expected version 0.8.19, got %v", compiler.Version)
		}
	})

	t.Run("contracts are loaded in order", func(t *testing.T) {
		if !reflect.DeepEqual(unit.ContractNames(), []string{"Token", "MathLib"}) {
			t.Errorf("Unexpected names %v", unit.ContractNames())
		}
	})

	t.Run("bytecode prefix is stripped", func(t *testing.T) {
		c, _ := unit.Contract("Token")
		if c.RuntimeBytecode != "6080" {
			t.Errorf("Expected 6080, got %q", c.RuntimeBytecode)
		}
	})
}

func TestLoadUnitBadVersion(t *testing.T) {
	path := writeUnitFile(t, `{
		"compiler": {"family": "solc", "version": "weird"},
		"contracts": [{"name": "Token"}]
	}`)

	unit, err := loadUnit(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if unit.Compiler().Version != nil {
		t.Errorf("Expected nil version, got %v", unit.Compiler().Version)
	}
}

func TestDefaultTargets(t *testing.T) {
	mathToken := evmlink.Placeholders("MathLib", "", "", evmlink.GenerationModern).Basic

	unit := evmlink.NewCompilationUnit(evmlink.Compiler{
		Family:  evmlink.CompilerFamilySolc,
		Version: evmlink.MustParseVersion("0.8.19"),
	})
	for _, c := range []evmlink.Contract{
		{Name: "Token", RuntimeBytecode: "6080" + mathToken},
		{Name: "MathLib", RuntimeBytecode: "6080"},
	} {
		if err := unit.AddContract(c); err != nil {
			t.Fatal(err)
		}
	}

	targets := defaultTargets(unit)
	if !reflect.DeepEqual(targets, []string{"Token"}) {
		t.Errorf("Expected [Token], got %v", targets)
	}
}

func TestLinkOptionsParsing(t *testing.T) {
	t.Run("bad start address is rejected", func(t *testing.T) {
		linkFlags.startAddress = "nope"
		defer func() { linkFlags.startAddress = "" }()
		if _, err := linkOptions(); err == nil {
			t.Error("Expected an error")
		}
	})

	t.Run("set-address pairs are parsed", func(t *testing.T) {
		linkFlags.setAddresses = []string{"MathLib=0x1234"}
		defer func() { linkFlags.setAddresses = nil }()
		opts, err := linkOptions()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(opts) != 1 {
			t.Errorf("Expected 1 option, got %d", len(opts))
		}
	})

	t.Run("malformed set-address is rejected", func(t *testing.T) {
		linkFlags.setAddresses = []string{"MathLib"}
		defer func() { linkFlags.setAddresses = nil }()
		if _, err := linkOptions(); err == nil {
			t.Error("Expected an error")
		}
	})
}
