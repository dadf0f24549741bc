// Package commands implements the opal inspector CLI.
package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opal",
		Short: "Opal object system tooling",
		Long: color.CyanString(`Opal - runtime object system tooling

Inspect the type registry of an Opal embedding: declared types, their
dispatch orders, fields, and method tables, from the terminal or over a
local HTTP endpoint.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewIntrospectCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			titleColor.Fprint(cmd.OutOrStdout(), "Opal version: ")
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git commit:   %s\n", GitCommit)
			fmt.Fprintf(cmd.OutOrStdout(), "Build date:   %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version:   %s\n", runtime.Version())
		},
	}
}
