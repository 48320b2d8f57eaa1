package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"javadox/internal/config"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage javadox configuration",
	Long:  "View and manage javadox configuration stored in .javadox/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective configuration: the file under --root merged with
defaults and JAVADOX_* environment overrides.

Examples:
  javadox config show
  JAVADOX_RENDER_INDENTWIDTH=2 javadox config show --format=json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Create .javadox/config.json under --root with default settings.
An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing configuration file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigShowResponse is the response format for config show
type ConfigShowResponse struct {
	ConfigPath   string         `json:"configPath"`
	UsedDefaults bool           `json:"usedDefaults"`
	Config       *config.Config `json:"config"`
}

// ConfigInitResponse is the response format for config init
type ConfigInitResponse struct {
	ConfigPath string `json:"configPath"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	path := config.Path(env.root)
	_, statErr := os.Stat(path)
	resp := &ConfigShowResponse{
		ConfigPath:   path,
		UsedDefaults: os.IsNotExist(statErr),
		Config:       env.cfg,
	}
	return writeResponse(cmd, resp)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	path := config.Path(root)
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(root); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return writeResponse(cmd, &ConfigInitResponse{ConfigPath: path})
}
