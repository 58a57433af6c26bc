package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/deckgen/internal/adapters/render/chartimg"
	"github.com/okian/deckgen/internal/adapters/repository"
	service "github.com/okian/deckgen/internal/app"
	"github.com/okian/deckgen/internal/config"
	"github.com/okian/deckgen/pkg/logger"
)

// state is shared by the root command and its subcommands.
type state struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
}

// Execute runs the CLI with the process arguments. Errors are logged
// once here.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root, st := newRoot()
	err := root.ExecuteContext(ctx)
	if err != nil {
		if st.log != nil {
			st.log.Error(ctx, "command failed", logger.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, "deckgen:", err)
		}
	}
	_ = logger.Sync()
	return err
}

// NewRootCommand returns the deckgen command tree.
func NewRootCommand() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *state) {
	st := &state{}
	root := &cobra.Command{
		Use:           "deckgen",
		Short:         "Generate PowerPoint decks from deck descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.init(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "YAML config file (default $"+config.EnvConfig+")")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "log level: debug, info, warn, error")

	build := buildCmd(st)
	root.AddCommand(build, validateCmd(st), inspectCmd(st), templateCmd(), historyCmd(st), serveCmd(st))

	// Bare "deckgen" builds the configured deck.
	root.RunE = build.RunE
	root.Args = cobra.ArbitraryArgs
	root.Flags().AddFlagSet(build.Flags())
	return root, st
}

func (st *state) init(ctx context.Context) error {
	cfg, err := config.Load(ctx, st.configPath)
	if err != nil {
		return err
	}
	if st.logLevel != "" {
		cfg.LogLevel = st.logLevel
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	st.log = logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		st.log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		cfg.LogLevel = "info"
		_ = logger.SetLevelString(cfg.LogLevel)
	}
	st.cfg = cfg
	return nil
}

// openLedger opens the configured ledger; it returns nil when disabled.
func (st *state) openLedger(ctx context.Context) (*repository.SQLiteLedger, error) {
	if st.cfg.LedgerPath == "" {
		return nil, nil
	}
	return repository.Open(ctx, st.cfg.LedgerPath, repository.WithLogger(st.log.Named("ledger")))
}

// newService wires a build service from the loaded configuration.
func (st *state) newService(ledger *repository.SQLiteLedger) (*service.Service, error) {
	opts := []service.Option{
		service.WithLogger(st.log.Named("builder")),
		service.WithOutputDir(st.cfg.OutputDir),
		service.WithWorkers(st.cfg.Workers),
		service.WithDataWorkbook(st.cfg.DataWorkbook),
		service.WithMetricsTextfile(st.cfg.MetricsTextfile),
	}
	if ledger != nil {
		opts = append(opts, service.WithLedger(ledger))
	}
	if st.cfg.ChartImages {
		rasterOpts := []chartimg.Option{chartimg.WithDPI(st.cfg.ChartDPI)}
		if st.cfg.ChartFont != "" {
			font, err := chartimg.LoadFont(st.cfg.ChartFont)
			if err != nil {
				return nil, err
			}
			rasterOpts = append(rasterOpts, chartimg.WithFont(font))
		}
		opts = append(opts, service.WithRasterizer(chartimg.New(rasterOpts...)))
	}
	return service.New(opts...), nil
}

// requests turns deck arguments into build requests, falling back to
// the configured deck.
func (st *state) requests(args []string) []service.Request {
	if len(args) == 0 {
		return []service.Request{{Deck: st.cfg.Deck, Output: st.cfg.Output}}
	}
	reqs := make([]service.Request, len(args))
	for i, a := range args {
		reqs[i] = service.Request{Deck: a}
	}
	if len(reqs) == 1 {
		reqs[0].Output = st.cfg.Output
	}
	return reqs
}
