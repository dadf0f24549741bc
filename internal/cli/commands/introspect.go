package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opal-lang/opal/internal/cli/config"
	"github.com/opal-lang/opal/internal/cli/ui"
	"github.com/opal-lang/opal/internal/inspect"
	"github.com/opal-lang/opal/runtime/object"
)

var (
	// Global flags for introspect commands
	outputFormat string
	localOnly    bool
	noColor      bool
	withDemo     bool
)

// NewIntrospectCommand creates the introspect command group
func NewIntrospectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Introspect the object registry",
		Long: `Introspect the Opal object registry.

Explore registered types, their dispatch orders, fields, and method
tables. Standalone invocations start from an empty registry; pass --demo
to load the example hierarchy, or embed the commands in a program that
has already registered its types.`,
		Example: `  # List all registered types
  opal introspect types --demo

  # View one type in detail
  opal introspect type Programmer --demo

  # Show a type's dispatch order
  opal introspect mro Baker --demo

  # Serve the registry as a JSON API
  opal introspect serve --demo`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			if withDemo {
				return inspect.RegisterDemo(object.DefaultRegistry())
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format: json or table")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(&withDemo, "demo", false, "Load the example type hierarchy")

	cmd.AddCommand(newIntrospectTypesCommand())
	cmd.AddCommand(newIntrospectTypeCommand())
	cmd.AddCommand(newIntrospectMROCommand())
	cmd.AddCommand(newIntrospectMethodsCommand())
	cmd.AddCommand(newIntrospectServeCommand())

	return cmd
}

// newIntrospectTypesCommand creates the 'introspect types' command
func newIntrospectTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List all registered types",
		RunE: func(cmd *cobra.Command, args []string) error {
			types := object.DefaultRegistry().Types()

			if outputFormat == "json" {
				names := object.DefaultRegistry().Names()
				return writeJSON(cmd, names)
			}

			table := ui.NewTable(cmd.OutOrStdout(), []string{"TYPE", "PARENTS", "FIELDS", "METHODS"}, noColor)
			for _, t := range types {
				var parents []string
				for _, p := range t.Parents() {
					parents = append(parents, p.Name())
				}
				table.AddRow(
					t.Name(),
					strings.Join(parents, ", "),
					strconv.Itoa(len(t.Fields(true))),
					strconv.Itoa(len(t.PublicMethods(true))),
				)
			}
			table.Render()
			return nil
		},
	}
}

// newIntrospectTypeCommand creates the 'introspect type' command
func newIntrospectTypeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type <name>",
		Short: "Show fields and methods of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := lookupType(args[0])
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				return writeJSON(cmd, typeJSON(t))
			}

			heading := color.New(color.Bold, color.FgCyan)
			if noColor {
				heading.DisableColor()
			}

			heading.Fprintln(cmd.OutOrStdout(), t.Name())
			fmt.Fprintf(cmd.OutOrStdout(), "dispatch order: %s\n\n", strings.Join(t.MRONames(), " → "))

			fields := ui.NewTable(cmd.OutOrStdout(), []string{"FIELD", "VISIBILITY", "KIND", "DECLARED BY", "FLAGS"}, noColor)
			for _, fd := range t.Fields(localOnly) {
				fields.AddRow(fd.Name, fd.Visibility.String(), fd.Kind.String(), fd.DeclaredBy, fieldFlags(fd))
			}
			fields.Render()

			fmt.Fprintln(cmd.OutOrStdout())
			methods := ui.NewTable(cmd.OutOrStdout(), []string{"METHOD", "VISIBILITY", "DECLARED BY", "ACCESSOR"}, noColor)
			for _, md := range t.PublicMethods(localOnly) {
				methods.AddRow(md.Name, md.Visibility.String(), md.DeclaredBy, boolMark(md.Synthesized))
			}
			for _, md := range t.PrivateMethods() {
				methods.AddRow(md.Name, md.Visibility.String(), md.DeclaredBy, boolMark(md.Synthesized))
			}
			methods.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&localOnly, "local", false, "Show only members declared directly by the type")
	return cmd
}

// newIntrospectMROCommand creates the 'introspect mro' command
func newIntrospectMROCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mro <name>",
		Short: "Show a type's dispatch order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := lookupType(args[0])
			if err != nil {
				return err
			}
			if outputFormat == "json" {
				return writeJSON(cmd, t.MRONames())
			}
			for i, name := range t.MRONames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, name)
			}
			return nil
		},
	}
}

// newIntrospectMethodsCommand creates the 'introspect methods' command
func newIntrospectMethodsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "methods <name>",
		Short: "List a type's methods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := lookupType(args[0])
			if err != nil {
				return err
			}

			public := t.PublicMethods(localOnly)
			private := t.PrivateMethods()

			if outputFormat == "json" {
				return writeJSON(cmd, map[string]any{
					"public":  methodNames(public),
					"private": methodNames(private),
				})
			}

			table := ui.NewTable(cmd.OutOrStdout(), []string{"METHOD", "VISIBILITY", "DECLARED BY"}, noColor)
			for _, md := range public {
				table.AddRow(md.Name, md.Visibility.String(), md.DeclaredBy)
			}
			for _, md := range private {
				table.AddRow(md.Name, md.Visibility.String(), md.DeclaredBy)
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&localOnly, "local", false, "Show only methods declared directly by the type")
	return cmd
}

// newIntrospectServeCommand creates the 'introspect serve' command
func newIntrospectServeCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the registry as a JSON API",
		Long: `Serve the object registry over HTTP.

The endpoint is read-only: GET /types, /types/{name}, /types/{name}/mro,
/types/{name}/fields, /types/{name}/methods. Listen address comes from
opal.yml (serve.host, serve.port) unless overridden with --addr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr()
			}

			log := zap.NewNop()
			if cfg.Trace.Enabled {
				if log, err = zap.NewDevelopment(); err != nil {
					return fmt.Errorf("failed to create logger: %w", err)
				}
			}

			srv := inspect.NewServer(object.DefaultRegistry(), log)
			cmd.Printf("Serving object registry on http://%s\n", addr)
			return srv.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides opal.yml)")
	return cmd
}

// lookupType resolves a type name against the default registry
func lookupType(name string) (*object.TypeMetaobject, error) {
	t, ok := object.DefaultRegistry().Lookup(name)
	if !ok {
		return nil, fmt.Errorf("type not found: %s (known types: %s)",
			name, strings.Join(object.DefaultRegistry().Names(), ", "))
	}
	return t, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func typeJSON(t *object.TypeMetaobject) map[string]any {
	fields := make([]map[string]any, 0)
	for _, fd := range t.Fields(localOnly) {
		fields = append(fields, map[string]any{
			"name":        fd.Name,
			"visibility":  fd.Visibility.String(),
			"kind":        fd.Kind.String(),
			"mandatory":   fd.Mandatory,
			"mutable":     fd.Mutable,
			"declared_by": fd.DeclaredBy,
		})
	}
	return map[string]any{
		"name":    t.Name(),
		"mro":     t.MRONames(),
		"fields":  fields,
		"public":  methodNames(t.PublicMethods(localOnly)),
		"private": methodNames(t.PrivateMethods()),
	}
}

func methodNames(methods []object.MethodDescriptor) []string {
	names := make([]string, len(methods))
	for i, md := range methods {
		names[i] = md.Name
	}
	return names
}

func fieldFlags(fd object.FieldDescriptor) string {
	var flags []string
	if fd.Mandatory {
		flags = append(flags, "mandatory")
	}
	if fd.Mutable {
		flags = append(flags, "rw")
	}
	if fd.Default != nil {
		flags = append(flags, "default")
	}
	if fd.Constraint != nil {
		flags = append(flags, "constrained")
	}
	return strings.Join(flags, ",")
}

func boolMark(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
