package main

import (
	"os"

	"pagecraft/config"
	"pagecraft/utils"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pagecraft",
	Short: "A one-page site builder with a drag-and-drop admin editor",
	Long: `Pagecraft serves a single public page built from a JSON document and an
admin editor for arranging text and button elements on it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.toml", "config file path")
	rootCmd.AddCommand(serveCmd, createAdminCmd, pullCmd, pushCmd)
}

// loadConfig reads --config and applies the log level
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	utils.Log.SetLevel(utils.ParseLevel(cfg.Log.Level))
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.Log.Error("%v", err)
		os.Exit(1)
	}
}
