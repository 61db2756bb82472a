package main

import (
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/example/coffee-sales/internal/config"
	"github.com/example/coffee-sales/internal/loader"
	applog "github.com/example/coffee-sales/internal/logging"
	"github.com/example/coffee-sales/pkg/query"
	"github.com/example/coffee-sales/pkg/sale"
)

var log = logging.MustGetLogger("coffee-sales")

// app carries the global flags and the configuration shared by every command
type app struct {
	configPath string
	dataPath   string
	sheet      string
	logLevel   string
	details    bool

	// stderr receives log output; os.Stderr when nil
	stderr io.Writer
	cfg    *config.Config
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coffee-sales",
		Short: "Filter and summarize coffee shop sales",
		Long: `Coffee Sales is a small dashboard over a coffee shop sales spreadsheet.
It filters sales by coffee, time of day, month, weekday and payment type,
and reports cups sold, revenue and each selection's share of overall sales.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Coffee Sales v1.0.0")
			fmt.Fprintln(cmd.OutOrStdout(), "Use --help for available commands")
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (TOML)")
	flags.StringVar(&a.dataPath, "data", "", "sales file (.xlsx or .csv), overrides data.path")
	flags.StringVar(&a.sheet, "sheet", "", "worksheet to read, overrides data.sheet")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides log_level")
	flags.BoolVar(&a.details, "details", false, "show full error details")

	cmd.AddCommand(
		newRecordsCmd(a),
		newOverviewCmd(a),
		newReportCmd(a),
		newReportsCmd(a),
		newGroupCmd(a),
		newDashboardCmd(a),
		newValuesCmd(a),
		newServeCmd(a),
	)
	return cmd
}

func (a *app) init() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.Data.Path = a.dataPath
	}
	if a.sheet != "" {
		cfg.Data.Sheet = a.sheet
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	w := a.stderr
	if w == nil {
		w = os.Stderr
	}
	if err := applog.InitLoggerTo(w, cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level: %w", err)
	}
	log.Debugf("Config: %+v", cfg)

	a.cfg = cfg
	return nil
}

func (a *app) loadDataset() (*sale.Dataset, error) {
	return loader.Load(a.cfg.Data.Path, loader.Options{Sheet: a.cfg.Data.Sheet})
}

// catalog returns the built-in reports with configured overrides applied
func (a *app) catalog() (*query.Catalog, error) {
	c := query.NewCatalog(query.DefaultReports())
	for name, rc := range a.cfg.Reports {
		r, err := c.Get(name)
		if err != nil {
			return nil, fmt.Errorf("failed to configure reports: %w", err)
		}
		dir, scope := r.Sort, r.Scope
		if rc.Sort != "" {
			if dir, err = query.ParseSortDirection(rc.Sort); err != nil {
				return nil, err
			}
		}
		if rc.Scope != "" {
			if scope, err = query.ParseScope(rc.Scope); err != nil {
				return nil, err
			}
		}
		if err := c.Override(name, dir, scope); err != nil {
			return nil, err
		}
	}
	return c, nil
}
