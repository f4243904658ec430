package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/retouch/internal/cli/model"
	"github.com/bnema/retouch/internal/cli/styles"
	"github.com/bnema/retouch/internal/infrastructure/config"
)

var (
	configYes        bool
	configJSON       bool
	configWriteSchema bool
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage configuration",
	Long:        `Show the configuration, its schema, and migrate the file to the current keys.`,
	Annotations: map[string]string{annotationNoApp: "true"},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file path",
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show every key with its default and current value",
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of the config file.

With --write the schema is saved as config.schema.json next to config.toml,
where editors with TOML schema support can pick it up.`,
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigSchema,
}

var configCheckCmd = &cobra.Command{
	Use:         "check",
	Short:       "List keys missing from or unknown to the config file",
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigCheck,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Rewrite the config file with the current keys",
	Long: `Compares your config file with the current defaults, adds missing keys,
carries values of renamed keys over and drops unknown keys.`,
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigMigrate,
}

var configResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Overwrite the config file with the defaults",
	Annotations: map[string]string{annotationNoApp: "true"},
	RunE:        runConfigReset,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configMigrateCmd)
	configCmd.AddCommand(configResetCmd)

	configShowCmd.Flags().BoolVar(&configJSON, "json", false, "print the key list as JSON")
	configSchemaCmd.Flags().BoolVar(&configWriteSchema, "write", false, "write config.schema.json next to config.toml")
	configMigrateCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "skip confirmation prompt")
	configResetCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "skip confirmation prompt")
}

// loadCommandConfig loads the config without wiring the app. Load errors are
// returned alongside the defaults.
func loadCommandConfig() (*config.Config, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return config.DefaultConfig(), err
	}
	if err := mgr.Load(); err != nil {
		return config.DefaultConfig(), err
	}
	return mgr.Get(), nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	path, err := config.GetConfigFile()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, loadErr := loadCommandConfig()
	theme := styles.NewTheme(cfg)
	renderer := styles.NewConfigSchemaRenderer(theme)
	provider := config.NewSchemaProvider()
	keys := provider.GetSchema()

	if configJSON {
		out, err := renderer.RenderJSON(keys)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	path, _ := config.GetConfigFile()
	fmt.Println(renderer.Render(path, keys, provider.Values(cfg)))
	if loadErr != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorStyle.Render(styles.IconX+" "+loadErr.Error()))
	}
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	if configWriteSchema {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		if err := config.GenerateSchemaFile(dir); err != nil {
			return err
		}
		fmt.Println("Wrote config.schema.json to " + dir)
		return nil
	}

	data, err := config.GenerateSchema()
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runConfigCheck(_ *cobra.Command, _ []string) error {
	migrator, err := config.NewMigrator("")
	if err != nil {
		return err
	}
	changes, err := migrator.DetectChanges()
	if err != nil {
		return err
	}
	fmt.Println(migrator.Path())
	fmt.Println()
	fmt.Print(config.FormatChangesAsDiff(changes))
	if len(changes) > 0 {
		fmt.Println("\nRun 'retouch config migrate' to apply.")
	}
	fmt.Println()
	return nil
}

func runConfigMigrate(_ *cobra.Command, _ []string) error {
	migrator, err := config.NewMigrator("")
	if err != nil {
		return err
	}
	changes, err := migrator.DetectChanges()
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Println("Config is up to date.")
		return nil
	}

	fmt.Print(config.FormatChangesAsDiff(changes))
	if !confirmConfigChange("Apply these changes?") {
		fmt.Println("Canceled.")
		return nil
	}

	if _, err := migrator.Migrate(); err != nil {
		return fmt.Errorf("migrate config: %w", err)
	}
	fmt.Printf("Updated %s\n", migrator.Path())
	return nil
}

func runConfigReset(_ *cobra.Command, _ []string) error {
	mgr, err := config.NewManager()
	if err != nil {
		return err
	}
	// A broken file is the usual reason to reset, so load errors are ignored.
	_ = mgr.Load()

	if !confirmConfigChange("Replace your config file with the defaults?") {
		fmt.Println("Canceled.")
		return nil
	}
	if err := mgr.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("reset config: %w", err)
	}
	path, _ := config.GetConfigFile()
	fmt.Printf("Wrote defaults to %s\n", path)
	return nil
}

func confirmConfigChange(message string) bool {
	if configYes {
		return true
	}
	cfg, _ := loadCommandConfig()
	presenter := model.NewConsolePresenter(styles.NewTheme(cfg), nil, os.Stderr)
	return presenter.Confirm(context.Background(), message)
}
