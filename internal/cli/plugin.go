package cli

import (
	"errors"
	"fmt"
	"regexp"
	"text/tabwriter"

	"github.com/plugboard-dev/plugboard/internal/config"
	"github.com/plugboard-dev/plugboard/internal/manifest"
	"github.com/plugboard-dev/plugboard/internal/plugin"
	"github.com/plugboard-dev/plugboard/internal/scaffold"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	pluginListDir string
	pluginNewDir  string
	pluginNewKind string
)

func init() {
	pluginListCmd.Flags().StringVar(&pluginListDir, "dir", "", "Plugin directory (default: plugins_dir setting)")
	pluginNewCmd.Flags().StringVar(&pluginNewDir, "dir", "", "Output directory (default: ./<name>)")
	pluginNewCmd.Flags().StringVar(&pluginNewKind, "kind", scaffold.KindPlugin, "What to generate (plugin, module)")
	pluginCmd.AddCommand(pluginListCmd)
	pluginCmd.AddCommand(pluginNewCmd)
	pluginCmd.AddCommand(pluginValidateCmd)
	pluginCmd.AddCommand(pluginShowCmd)
	rootCmd.AddCommand(pluginCmd)
}

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Inspect plugin manifests",
}

var pluginListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered plugins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := pluginListDir
		if dir == "" {
			dir = config.Current().PluginsDir
		}

		plugins, discoverErr := plugin.Discover(dir)
		if len(plugins) == 0 && discoverErr == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No plugins found in %s\n", dir)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tREQUIRES\tCOMPATIBLE\tPATH")
		for _, p := range plugins {
			requires := p.Manifest.Requires
			if requires == "" {
				requires = "-"
			}
			compatible := "yes"
			if err := plugin.CheckCompatible(buildVersion, p.Manifest.Requires); err != nil {
				compatible = "no"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name(), p.Version(), requires, compatible, p.Path)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if discoverErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "\n%v\n", discoverErr)
		}
		return nil
	},
}

var pluginValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a plugin manifest against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		result, err := manifest.ValidateFile(path)
		if err != nil {
			return err
		}
		if result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", path)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: invalid\n", path)
		for _, issue := range result.Issues {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", issue)
		}
		return errors.New("manifest validation failed")
	},
}

var pluginShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Show a parsed plugin manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := plugin.Load(args[0])
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(p.Manifest); err != nil {
			return fmt.Errorf("encoding manifest: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}

		if err := plugin.CheckCompatible(buildVersion, p.Manifest.Requires); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		return nil
	},
}

var pluginNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

var pluginNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Scaffold a new plugin or built-in module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !pluginNameRe.MatchString(name) {
			return fmt.Errorf("invalid plugin name %q: use lowercase letters, digits and hyphens", name)
		}

		dir := pluginNewDir
		if dir == "" {
			dir = name
		}

		result, err := scaffold.Generate(pluginNewKind, scaffold.NewScaffoldData(name, buildVersion), dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s in %s\n", pluginNewKind, result.OutputDir)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		return nil
	},
}
