package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/windtunnel/internal/config"
	"github.com/spf13/cobra"
)

func configCommands() []*cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "create or inspect configuration files",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with defaults or a preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "windtunnel.json"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("Config saved to: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective config after presets, files and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			var f config.Format
			switch format {
			case "json":
				f = config.FormatJSON
			case "yaml", "yml":
				f = config.FormatYAML
			case "toml":
				f = config.FormatTOML
			default:
				return fmt.Errorf("unknown format %q (want json, yaml or toml)", format)
			}
			data, err := config.Marshal(cfg, f)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
	addScenarioFlags(showCmd)
	showCmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml, toml)")

	configCmd.AddCommand(initCmd, showCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTUNNEL (m)\tVELOCITY\tDENSITY\tSCALE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%gx%gx%g\t%g m/s\t%g\t%g\n",
					name,
					p.Tunnel.Length, p.Tunnel.Width, p.Tunnel.Height,
					p.Flow.Velocity,
					p.Flow.Density,
					p.Scale.X,
				)
			}
			return w.Flush()
		},
	}

	return []*cobra.Command{configCmd, presetsCmd}
}
