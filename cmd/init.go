package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lovelace-project/lovelace-cli/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long:  `Walks you through the configuration and writes it to the config file path (--config, default .lovelace.yml).`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfgFile); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
	}

	_, err := config.RunWizard(cfgFile)
	return err
}
