package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marine-term-translations/setup-harvest-action/internal/adapters/db/sqlite"
	"github.com/marine-term-translations/setup-harvest-action/internal/adapters/sparql"
	"github.com/marine-term-translations/setup-harvest-action/internal/ci"
	"github.com/marine-term-translations/setup-harvest-action/internal/config"
	"github.com/marine-term-translations/setup-harvest-action/internal/domain"
	"github.com/marine-term-translations/setup-harvest-action/internal/usecase/harvester"
)

type harvestFlags struct {
	configPath string
	endpoint   string
	dbPath     string
	batchSize  int
	extended   bool
	verbose    bool
}

// NewRootCommand builds the harvest CLI:
//
//	harvest <collection-uri> [output-db-path]
func NewRootCommand() *cobra.Command {
	var flags harvestFlags
	cmd := &cobra.Command{
		Use:           "harvest <collection-uri> [output-db-path]",
		Short:         "Harvest a SKOS collection from a SPARQL endpoint into a local SQLite store",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarvest(cmd, args, flags)
		},
	}
	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to a yaml config file")
	cmd.Flags().StringVar(&flags.endpoint, "endpoint", "", "SPARQL endpoint URL (overrides config)")
	cmd.Flags().StringVar(&flags.dbPath, "db", "", "output database path (overrides config)")
	cmd.Flags().IntVar(&flags.batchSize, "batch-size", 0, "page size for paginated fetching (overrides config)")
	cmd.Flags().BoolVar(&flags.extended, "extended", false, "also harvest notation and broader/narrower/related links")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "human-readable debug logging")
	return cmd
}

func runHarvest(cmd *cobra.Command, args []string, flags harvestFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return &domain.InvalidInputError{URI: flags.configPath, Reason: err.Error()}
	}
	if flags.endpoint != "" {
		cfg.Endpoint = flags.endpoint
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	if flags.batchSize > 0 {
		cfg.BatchSize = flags.batchSize
	}
	if flags.extended {
		cfg.Extended = true
	}
	collectionURI := args[0]
	if len(args) > 1 {
		// Positional output path wins over --db, matching the original
		// operator workflow.
		cfg.DBPath = args[1]
	}

	log, err := newLogger(flags.verbose)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	log = log.With(zap.String("run_id", uuid.NewString()))

	builder := sparql.NewQueryBuilder(cfg.ExpectedHost, cfg.Fields(), log)
	client := sparql.NewClient(cfg.Endpoint, builder, sparql.RetryPolicy{
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  time.Duration(cfg.BaseDelay),
	}, time.Duration(cfg.Timeout), log)

	// Reject a malformed identifier before touching the database file.
	if err := client.Validate(collectionURI); err != nil {
		return err
	}

	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		return &domain.StoreError{Op: "open database", Err: err}
	}
	defer db.Close()

	svc := harvester.New(client, sqlite.NewStore(db), cfg.Fields(), cfg.BatchSize, log)
	summary, err := svc.Run(cmd.Context(), collectionURI)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"harvested %s: %d members, %d pages, %d terms inserted, %d terms updated, %d fields inserted\n",
		summary.Collection, summary.Total, summary.Pages,
		summary.Stats.TermsInserted, summary.Stats.TermsUpdated, summary.Stats.FieldsInserted)

	if err := ci.AppendOutput("database-path", cfg.DBPath); err != nil {
		log.Warn("could not append CI output", zap.Error(err))
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Execute runs the root command and maps failures to the operator-facing
// error taxonomy and a non-zero exit code.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		category := domain.Classify(err)
		if category == domain.CategoryUnclassified {
			fmt.Fprintf(os.Stderr, "%s error: %+v\n", category, err)
		} else {
			fmt.Fprintf(os.Stderr, "%s error: %v\n", category, err)
		}
		os.Exit(1)
	}
}
