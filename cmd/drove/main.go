package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drovehq/drove/pkg/log"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drove",
	Short: "Drove - declarative spec layer for cluster workloads",
	Long: `Drove manages the declarative specification objects of a
container-orchestration control plane: cluster, node, service and network
specs. Specs are validated at submission, stored immutably with optimistic
concurrency, and replaced wholesale on update.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		levelStr, _ := cmd.Flags().GetString("log-level")
		jsonOut, _ := cmd.Flags().GetBool("log-json")
		log.Init(log.Config{Level: log.Level(levelStr), JSONOutput: jsonOut})
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Drove version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit JSON logs")
	rootCmd.PersistentFlags().String("data-dir", "/var/lib/drove", "Spec database directory")
}
