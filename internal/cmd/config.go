package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skillsphere/skillsphere/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or edit Skillsphere configuration",
	Long: `Manage the Skillsphere configuration stored at ~/.skillsphere/config.yaml

Examples:
  # View current configuration
  skillsphere config view

  # Get a specific value
  skillsphere config get backend_url

  # Set a specific value
  skillsphere config set log.level debug

  # Edit configuration in $EDITOR
  skillsphere config edit

  # Show configuration file path
  skillsphere config path
`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display current configuration",
	RunE:  runConfigView,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Retrieve a configuration value by key: backend_url, cookie_file, log.level or log.format.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  `Set a configuration value by key: backend_url, cookie_file, log.level or log.format.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration in $EDITOR",
	RunE:  runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.DefaultPath()
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	value, err := configValue(cfg, args[0])
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	if err := setConfigValue(&cfg, args[0], args[1]); err != nil {
		return err
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return fmt.Errorf("$EDITOR is not set")
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	// Seed the file with defaults when it doesn't exist yet so the
	// editor opens something meaningful.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(config.Default(), path); err != nil {
			return err
		}
	}

	edit := exec.Command(editor, path)
	edit.Stdin = os.Stdin
	edit.Stdout = os.Stdout
	edit.Stderr = os.Stderr
	if err := edit.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	// Validate the result so a broken edit is caught now, not at the
	// next invocation.
	if _, err := config.Load(path); err != nil {
		return err
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func configValue(cfg config.Config, key string) (string, error) {
	switch key {
	case "backend_url":
		return cfg.BackendURL, nil
	case "cookie_file":
		return cfg.CookieFile, nil
	case "log.level":
		return cfg.Log.Level, nil
	case "log.format":
		return cfg.Log.Format, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "backend_url":
		cfg.BackendURL = value
	case "cookie_file":
		cfg.CookieFile = value
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
