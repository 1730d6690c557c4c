package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bindery/internal/config"
	"bindery/internal/diag"
	"bindery/internal/ir"
	"bindery/internal/load"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <declarations>",
	Short: "Generate a header from a declaration payload",
	Long:  "Generate lowers a pre-parsed declaration payload into a C or C++ header.",
	Args:  cobra.ExactArgs(1),
	RunE:  generateExecution,
}

func init() {
	generateCmd.Flags().StringP("config", "c", "", "path to bindery.toml (default: ./bindery.toml if present)")
	generateCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	generateCmd.Flags().Bool("strict", false, "fail the run on any dropped declaration")
}

func generateExecution(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	reporter := diag.NewConsoleReporter(os.Stderr, colorizeOutput(cmd))
	lib := ir.NewLibrary(cfg, reporter)

	loadOpts := []load.Option{load.WithReporter(reporter)}
	if strict {
		loadOpts = append(loadOpts, load.WithStrict())
	}
	if err := load.ReadFile(args[0], lib, loadOpts...); err != nil {
		return err
	}

	bindings, err := lib.Generate()
	if err != nil {
		return err
	}

	if outputPath == "" {
		return bindings.Write(os.Stdout)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", outputPath, err)
	}
	if err := bindings.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
