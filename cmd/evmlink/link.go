package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/branched-services/go-evmlink"
)

var linkFlags struct {
	input        string
	output       string
	targets      []string
	startAddress string
	setAddresses []string
	hexAddresses bool
	noAllocate   bool
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Compute the deployment order and link a compilation unit",
	RunE:  runLink,
}

func init() {
	flags := linkCmd.Flags()
	flags.StringVarP(&linkFlags.input, "input", "i", "", "compilation-unit JSON file (required)")
	flags.StringVarP(&linkFlags.output, "output", "o", "", "output file (default stdout)")
	flags.StringArrayVarP(&linkFlags.targets, "target", "t", nil,
		"target contract to deploy; repeatable, defaults to every contract without dependents")
	flags.StringVar(&linkFlags.startAddress, "start-address", "",
		"first synthetic library address, decimal or 0x-hex")
	flags.StringArrayVar(&linkFlags.setAddresses, "set-address", nil,
		"manual library address as Name=0x..; repeatable, overrides allocation")
	flags.BoolVar(&linkFlags.hexAddresses, "hex-addresses", false,
		"emit library addresses as 0x-prefixed strings instead of integers")
	flags.BoolVar(&linkFlags.noAllocate, "no-allocate", false,
		"skip synthetic allocation; link only addresses given via --set-address")
	_ = linkCmd.MarkFlagRequired("input")
}

// unitFile is the JSON shape handed over by upstream build-tool adapters.
type unitFile struct {
	Compiler struct {
		Family  string `json:"family"`
		Version string `json:"version"`
	} `json:"compiler"`
	Contracts []struct {
		Name            string `json:"name"`
		InitBytecode    string `json:"init_bytecode"`
		RuntimeBytecode string `json:"runtime_bytecode"`
		AbsolutePath    string `json:"absolute_path"`
		UsedPath        string `json:"used_path"`
	} `json:"contracts"`
}

func runLink(cmd *cobra.Command, args []string) error {
	unit, err := loadUnit(linkFlags.input)
	if err != nil {
		return err
	}

	targets := linkFlags.targets
	if len(targets) == 0 {
		targets = defaultTargets(unit)
		log.Debugf("no targets given, defaulting to %v", targets)
	}

	opts, err := linkOptions()
	if err != nil {
		return err
	}

	result, err := unit.Autolink(targets, opts...)
	if err != nil {
		return err
	}

	for _, u := range result.Unresolved {
		log.WithFields(map[string]any{
			"contract": u.Contract,
			"token":    u.Token,
		}).Warn("unresolved placeholder left in bytecode")
	}
	log.WithField("order", result.DeploymentOrder).Info("deployment order computed")

	artifact, err := result.Export(linkFlags.hexAddresses)
	if err != nil {
		return err
	}

	if linkFlags.output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(artifact))
		return nil
	}
	return os.WriteFile(linkFlags.output, append(artifact, '\n'), 0o644)
}

func loadUnit(path string) (*evmlink.CompilationUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file unitFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	compiler := evmlink.Compiler{Family: file.Compiler.Family}
	if file.Compiler.Version != "" {
		version, err := evmlink.ParseVersion(file.Compiler.Version)
		if err != nil {
			// An unparsable version downgrades to "unknown"; placeholders
			// will be reported rather than resolved.
			log.WithField("version", file.Compiler.Version).Warn("unrecognized compiler version")
		} else {
			compiler.Version = version
		}
	}

	unit := evmlink.NewCompilationUnit(compiler)
	for _, c := range file.Contracts {
		err := unit.AddContract(evmlink.Contract{
			Name:            c.Name,
			InitBytecode:    c.InitBytecode,
			RuntimeBytecode: c.RuntimeBytecode,
			AbsolutePath:    c.AbsolutePath,
			UsedPath:        c.UsedPath,
		})
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", c.Name, err)
		}
	}
	return unit, nil
}

// defaultTargets picks every contract no other contract depends on.
func defaultTargets(unit *evmlink.CompilationUnit) []string {
	graph := unit.DependencyGraph()

	depended := make(map[string]bool)
	for _, deps := range graph.Dependencies {
		for _, dep := range deps {
			depended[dep] = true
		}
	}

	var targets []string
	for _, name := range unit.ContractNames() {
		if !depended[name] {
			targets = append(targets, name)
		}
	}
	return targets
}

func linkOptions() ([]evmlink.LinkOption, error) {
	var opts []evmlink.LinkOption

	if linkFlags.startAddress != "" {
		start, err := strconv.ParseUint(linkFlags.startAddress, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid start address %q: %w", linkFlags.startAddress, err)
		}
		opts = append(opts, evmlink.WithStartAddress(start))
	}

	if len(linkFlags.setAddresses) > 0 {
		addresses := make(map[string]uint64, len(linkFlags.setAddresses))
		for _, pair := range linkFlags.setAddresses {
			name, value, ok := strings.Cut(pair, "=")
			if !ok || name == "" {
				return nil, fmt.Errorf("invalid --set-address %q, want Name=0x..", pair)
			}
			address, err := strconv.ParseUint(value, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid address in %q: %w", pair, err)
			}
			addresses[name] = address
		}
		opts = append(opts, evmlink.WithLibraryAddresses(addresses))
	}

	if linkFlags.noAllocate {
		opts = append(opts, evmlink.WithoutAllocation())
	}
	return opts, nil
}
