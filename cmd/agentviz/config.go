package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentviz/agentviz/internal/config"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global configuration",
	Long: `Manage the global configuration stored in ~/.config/agentviz/config.yml.

Keys:
  platform_url  Platform base URL for watch mode
  api_key       API key sent to the platform
  width         Default viewport width
  height        Default viewport height
  seed          Default layout seed
  store_path    Snapshot store location`,
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current configuration",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

// ConfigResponse is the JSON response for config get.
type ConfigResponse struct {
	PlatformURL string  `json:"platform_url,omitempty"`
	APIKey      string  `json:"api_key,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Seed        int64   `json:"seed,omitempty"`
	StorePath   string  `json:"store_path,omitempty"`
	Path        string  `json:"path"`
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	if humanOutput {
		fmt.Printf("config: %s\n", config.Path())
		if cfg.PlatformURL != "" {
			fmt.Printf("  platform_url: %s\n", cfg.PlatformURL)
		}
		if cfg.APIKey != "" {
			fmt.Printf("  api_key: (set)\n")
		}
		w, h := cfg.Viewport()
		fmt.Printf("  viewport: %gx%g\n", w, h)
		fmt.Printf("  seed: %d\n", cfg.Seed)
		fmt.Printf("  store_path: %s\n", storePath(cfg, ""))
		return nil
	}

	return outputJSON(ConfigResponse{
		PlatformURL: cfg.PlatformURL,
		APIKey:      cfg.APIKey,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Seed:        cfg.Seed,
		StorePath:   cfg.StorePath,
		Path:        config.Path(),
	})
}

// UpdateResponse is the JSON response for config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	switch key {
	case "platform_url":
		cfg.PlatformURL = value
	case "api_key":
		cfg.APIKey = value
	case "store_path":
		cfg.StorePath = value
	case "width", "height":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			exitWithError(ExitError, "invalid %s: %q", key, value)
		}
		if key == "width" {
			cfg.Width = f
		} else {
			cfg.Height = f
		}
	case "seed":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			exitWithError(ExitError, "invalid seed: %q", value)
		}
		cfg.Seed = n
	default:
		exitWithError(ExitError, "unknown config key %q", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	}
	return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
}
