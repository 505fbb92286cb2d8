package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/assetrev/internal/config"
	"github.com/quantmind-br/assetrev/internal/rewrite"
	"github.com/quantmind-br/assetrev/internal/utils"
	"github.com/quantmind-br/assetrev/pkg/assetrev"
	"github.com/quantmind-br/assetrev/pkg/version"
)

var (
	cfgFile  string
	verbose  bool
	progress bool
	log      *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "assetrev [public-path]",
	Short: "Point asset references at versioned file names",
	Long: `assetrev rewrites script, style and image references in built markup so
they point at the versioned file names listed in mix-manifest.json.

The public path defaults to ./dist. Only files matching the whitelist are
scanned; references without a manifest entry are reported and left as is.`,
	Version:       version.Short(),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.assetrev/assetrev.yaml)")
	rootCmd.PersistentFlags().StringSliceP("whitelist", "w", config.DefaultWhitelist, "Glob patterns of files to scan (prefix with ! to exclude)")
	rootCmd.PersistentFlags().String("pattern", config.DefaultPattern, "Regular expression whose first group is the asset path")
	rootCmd.PersistentFlags().StringP("manifest", "m", "", "Manifest file (default is <public-path>/mix-manifest.json)")
	rootCmd.PersistentFlags().String("stats", "", "Build report JSON listing emitted assets, used instead of scanning the disk")
	rootCmd.PersistentFlags().IntP("workers", "j", config.DefaultWorkers, "Number of files rewritten concurrently")
	rootCmd.PersistentFlags().String("encoding", config.DefaultEncoding, "Character encoding of the scanned files")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Report changes without writing files")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (pretty, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&progress, "progress", false, "Show a progress bar")

	_ = viper.BindPFlag("whitelist", rootCmd.PersistentFlags().Lookup("whitelist"))
	_ = viper.BindPFlag("pattern", rootCmd.PersistentFlags().Lookup("pattern"))
	_ = viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("stats", rootCmd.PersistentFlags().Lookup("stats"))
	_ = viper.BindPFlag("replace.workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("replace.encoding", rootCmd.PersistentFlags().Lookup("encoding"))
	_ = viper.BindPFlag("replace.dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if len(args) == 1 {
		cfg.PublicPath = args[0]
	}

	log = utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: verbose,
	})

	opts, err := cfg.Options(log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if progress {
		var bar *progressbar.ProgressBar
		opts.ReplaceOptions.OnStart = func(total int) {
			bar = utils.NewProgressBarTo(cmd.ErrOrStderr(), total, utils.DescRewriting)
		}
		opts.ReplaceOptions.OnFile = func(rewrite.Result) {
			_ = bar.Add(1)
		}
		defer func() {
			if bar != nil {
				_ = bar.Finish()
			}
		}()
	}

	results, err := assetrev.ReplaceAssetPaths(ctx, opts)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), results, cfg.Replace.DryRun)
	return nil
}

// printSummary writes one line per changed file and a closing total
func printSummary(w io.Writer, results []rewrite.Result, dryRun bool) {
	verb := "rewrote"
	if dryRun {
		verb = "would rewrite"
	}

	changed, unmapped := 0, 0
	for _, r := range results {
		unmapped += len(r.Unmapped)
		if !r.HasChanged {
			continue
		}
		changed++
		fmt.Fprintf(w, "%s %s (%d of %d references)\n", verb, r.File, r.NumReplacements, r.NumMatches)
	}

	fmt.Fprintf(w, "%d of %d files changed", changed, len(results))
	if unmapped > 0 {
		fmt.Fprintf(w, ", %d references without manifest entry", unmapped)
	}
	fmt.Fprintln(w)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}
