package cmd

import (
	"apisport/internal/common"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:              "api-sport",
	TraverseChildren: true,
	SilenceUsage:     true,
	SilenceErrors:    true,
	Short:            "Fetch fixtures and teams from api-sports.io and save them as JSON and SQL.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logLevel, _ := cmd.Flags().GetString("log-level")
		verbose, _ := cmd.Flags().GetBool("verbose")
		return common.SetLogLevel(logLevel, verbose)
	},
}

// Adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	// Persistent flags defined here will be global for the entire application.
	rootCmd.PersistentFlags().StringP("config", "c", "config.json", "path to config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Run with verbose logging")
	rootCmd.PersistentFlags().String("log-level", "INFO", "the log level to use (DEBUG | INFO | WARN | ERROR | FATAL)")

	rootCmd.AddCommand(newHarvestCmd("get-matchs", "Fetch matches from sport API", matchesResource, "matchs.sql", "matchs.json"))
	rootCmd.AddCommand(newHarvestCmd("get-teams", "Fetch Teams data from the API", teamsResource, "teams.sql", "teams.json"))

	cobra.OnInitialize(common.InitLogging)
}
