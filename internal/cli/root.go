package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/marketvet/marketvet/internal/config"
	"github.com/marketvet/marketvet/internal/marketplace"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/marketvet/marketvet/internal/cli.version=1.2.3"
	version = "0.4.0"

	outputJSON bool
	applyFix   bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "marketvet [path]",
	Short: "Validate a plugin marketplace manifest against its skills tree",
	Long: "marketvet checks a marketplace.json manifest for structural problems,\n" +
		"dangling or duplicated skill references, SKILL.md frontmatter compliance\n" +
		"and orphaned skill directories, and can prune dangling references in place.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runVerify,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&outputJSON, "json", false, "Emit the structured report as JSON")
	rootCmd.Flags().BoolVar(&applyFix, "fix", false, "Remove dangling skill references and empty plugins, rewriting the manifest in place")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	manifestPath := cfg.Paths.Manifest
	if len(args) == 1 {
		manifestPath = args[0]
	}

	verifier := marketplace.NewVerifier(cfg, marketplace.OSFS, newLogger(verbose))
	report, err := verifier.Run(manifestPath, applyFix)
	if err != nil {
		return err
	}

	if outputJSON {
		out, err := report.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	} else {
		report.RenderText(cmd.OutOrStdout())
	}

	if !report.Passed() {
		return fmt.Errorf("validation failed with %d error(s)", len(report.Errors))
	}
	return nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
