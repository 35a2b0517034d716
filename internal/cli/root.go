package cli

import (
	"github.com/spf13/cobra"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "consolectl",
	Short: "Consolectl - Управление платформой клубов",
	Long: `Consolectl - инструмент командной строки для администрирования
платформы клубов.

Поддерживает вход и выход администратора, управление администраторами,
клубами и членствами. Сессия сохраняется между запусками.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "config file")

	// Add subcommands
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(adminsCmd)
	rootCmd.AddCommand(clubsCmd)
	rootCmd.AddCommand(membersCmd)
}
