package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/agentbuilder/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify agentbuilder configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/agentbuilder/config.yaml
Project-specific overrides can be placed in .agentbuilder.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch len(args) {
		case 0:
			for _, key := range configKeys {
				value, _ := getConfigValue(cfg, key)
				fmt.Fprintf(out, "%s: %s\n", key, value)
			}
			return nil
		case 1:
			value, err := getConfigValue(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, value)
			return nil
		default:
			if err := setConfigValue(cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(out, "Set %s = %s\n", args[0], args[1])
			return nil
		}
	},
}

// configKeys lists the settable keys in display order.
var configKeys = []string{
	"scan.skip_dirs",
	"scope.top_groups",
	"scope.top_files",
	"proposal.amendment_slice",
	"log.debug",
	"output.format",
	"metrics.addr",
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "scan.skip_dirs":
		return strings.Join(cfg.Scan.SkipDirs, ","), nil
	case "scope.top_groups":
		return strconv.Itoa(cfg.Scope.TopGroups), nil
	case "scope.top_files":
		return strconv.Itoa(cfg.Scope.TopFiles), nil
	case "proposal.amendment_slice":
		return strconv.Itoa(cfg.Proposal.AmendmentSlice), nil
	case "log.debug":
		return strconv.FormatBool(cfg.Log.Debug), nil
	case "output.format":
		return cfg.Output.Format, nil
	case "metrics.addr":
		if cfg.Metrics.Addr == "" {
			return "(not set)", nil
		}
		return cfg.Metrics.Addr, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
// Range checks happen when the config is saved.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "scan.skip_dirs":
		var dirs []string
		for _, d := range strings.Split(value, ",") {
			if d = strings.TrimSpace(d); d != "" {
				dirs = append(dirs, d)
			}
		}
		cfg.Scan.SkipDirs = dirs
	case "scope.top_groups":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for scope.top_groups: %w", err)
		}
		cfg.Scope.TopGroups = n
	case "scope.top_files":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for scope.top_files: %w", err)
		}
		cfg.Scope.TopFiles = n
	case "proposal.amendment_slice":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for proposal.amendment_slice: %w", err)
		}
		cfg.Proposal.AmendmentSlice = n
	case "log.debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for log.debug: %w", err)
		}
		cfg.Log.Debug = b
	case "output.format":
		cfg.Output.Format = value
	case "metrics.addr":
		cfg.Metrics.Addr = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
