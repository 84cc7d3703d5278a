package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bcallahan/trivia-archive/internal/config"
	"github.com/bcallahan/trivia-archive/internal/importer"
	"github.com/bcallahan/trivia-archive/internal/logger"
	"github.com/bcallahan/trivia-archive/internal/scraper"
	"github.com/bcallahan/trivia-archive/internal/storage"
)

var (
	flagConfig  string
	flagFormat  string
	flagVerbose bool
	flagDBPath  string

	flagListPage int

	flagStartPage    int
	flagEndPage      int
	flagWorkers      int
	flagDelayMS      int
	flagRetries      uint64
	flagSkipExisting bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "trivia-archive",
		Short: "Scrape archived quiz-show games into a local database",
		Long: `A CLI tool that fetches archived quiz-show pages and converts them into
typed games: categories grouped by round, clues with values, answers, and
classification flags (daily double, triple stumper, tournament episodes).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flagFormat = strings.ToLower(flagFormat)
			format := OutputFormat(flagFormat)
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
			}
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "trivia-archive.yaml", "Path to YAML config file")
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagDBPath, "db", "", "Database path (overrides config)")

	root.AddCommand(newGameCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newGamesCmd())

	return root
}

func newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <source-game-id>",
		Short: "Fetch and parse one game by its source identifier",
		Args:  cobra.ExactArgs(1),
		RunE:  runGame,
	}
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch one page of the show listing",
		RunE:  runList,
	}
	cmd.Flags().IntVar(&flagListPage, "page", 1, "Listing page number")
	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Discover games from the listing and import them into the database",
		RunE:  runImport,
	}
	cmd.Flags().IntVar(&flagStartPage, "start-page", 1, "First listing page")
	cmd.Flags().IntVar(&flagEndPage, "end-page", 0, "Last listing page (0 = until an empty page)")
	cmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent fetch workers (overrides config)")
	cmd.Flags().IntVar(&flagDelayMS, "delay-ms", 0, "Per-worker delay between requests in ms (overrides config)")
	cmd.Flags().Uint64Var(&flagRetries, "retries", 2, "Retry attempts per game after the first failure")
	cmd.Flags().BoolVar(&flagSkipExisting, "skip-existing", true, "Skip games already in the database")
	return cmd
}

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List games stored in the database",
		RunE:  runGames,
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDBPath != "" {
		cfg.DatabasePath = flagDBPath
	}
	return cfg, nil
}

func runGame(cmd *cobra.Command, args []string) error {
	sourceGameID, err := strconv.Atoi(args[0])
	if err != nil || sourceGameID <= 0 {
		return fmt.Errorf("invalid source game id: %s", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sc := scraper.NewWithOptions(cfg.ScraperOptions())
	g := sc.FetchGame(cmd.Context(), sourceGameID)
	if g == nil {
		return fmt.Errorf("no data for game %d", sourceGameID)
	}

	return WriteGame(os.Stdout, g, OutputFormat(flagFormat))
}

func runList(cmd *cobra.Command, args []string) error {
	if flagListPage <= 0 {
		return fmt.Errorf("invalid page: %d", flagListPage)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sc := scraper.NewWithOptions(cfg.ScraperOptions())
	entries := sc.FetchShowList(cmd.Context(), flagListPage)

	return WriteEntries(os.Stdout, flagListPage, entries, OutputFormat(flagFormat))
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	workers := cfg.Import.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}
	delayMS := cfg.Import.DelayMS
	if flagDelayMS > 0 {
		delayMS = flagDelayMS
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	sc := scraper.NewWithOptions(cfg.ScraperOptions())
	imp := importer.New(sc, store, importer.Options{
		StartPage:    flagStartPage,
		EndPage:      flagEndPage,
		Workers:      workers,
		Delay:        time.Duration(delayMS) * time.Millisecond,
		Retries:      flagRetries,
		SkipExisting: flagSkipExisting,
	})

	stats, err := imp.Run(cmd.Context())
	if stats != nil {
		if werr := WriteStats(os.Stdout, stats, OutputFormat(flagFormat)); werr != nil {
			return werr
		}
	}
	if flagVerbose {
		logger.Debug("import metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	}
	return err
}

func runGames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	summaries, err := store.ListGames()
	if err != nil {
		return err
	}

	return WriteSummaries(os.Stdout, summaries, OutputFormat(flagFormat))
}
