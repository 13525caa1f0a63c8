package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is replaced at build time with -ldflags "-X apisport/cmd.Version=..."
var Version = "0.0.0-dev"

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:              "version",
	TraverseChildren: true,
	Short:            "returns version ",
	Long: `returns version
`,
	Run: func(cmd *cobra.Command, args []string) {
		log.Debug("version called")

		fmt.Println("Version: " + Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
