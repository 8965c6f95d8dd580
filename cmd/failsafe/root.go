package failsafe

import (
	"embed"
	"fmt"

	"github.com/arthur-debert/failsafe/internal/version"
	"github.com/arthur-debert/failsafe/pkg/cobrax/topics"
	"github.com/arthur-debert/failsafe/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed docs
var docsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "failsafe",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given: show help but exit non-zero
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Add all commands
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newOverrideCmd())
	rootCmd.AddCommand(newOverridesCmd())
	rootCmd.AddCommand(newGenconfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Initialize topic-based help system from the embedded docs
	opts := topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.Initialize(rootCmd, docsFS, "docs", opts); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize help topics")
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "failsafe version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}
