package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/coffee-sales/internal/display"
	"github.com/example/coffee-sales/internal/server"
	"github.com/example/coffee-sales/pkg/query"
	"github.com/example/coffee-sales/pkg/sale"
)

const filterUsage = "filter as field=value[,value...], repeatable (fields: coffee_name, Time_of_Day, Month_name, cash_type, Weekday, card)"

// loadView loads the dataset and applies the --filter arguments
func (a *app) loadView(filters []string) (*sale.Dataset, *query.View, error) {
	spec, err := query.ParseFilterArgs(filters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse filters: %w", err)
	}
	d, err := a.loadDataset()
	if err != nil {
		return nil, nil, err
	}
	return d, query.ApplyFilters(d, spec), nil
}

func newRecordsCmd(a *app) *cobra.Command {
	var (
		filters []string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List the sales matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, view, err := a.loadView(filters)
			if err != nil {
				return err
			}
			return display.RenderRecords(cmd.OutOrStdout(), view.Records(), limit)
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, filterUsage)
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows to print, 0 for all")
	return cmd
}

func newOverviewCmd(a *app) *cobra.Command {
	var filters []string
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show cups sold, revenue, average sale and share of overall sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, view, err := a.loadView(filters)
			if err != nil {
				return err
			}
			return display.RenderMetrics(cmd.OutOrStdout(), query.Summarize(d, view))
		},
	}
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, filterUsage)
	return cmd
}

type reportOptions struct {
	filters []string
	sort    string
	chart   bool
	width   int
}

func (o *reportOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&o.filters, "filter", "f", nil, filterUsage)
	cmd.Flags().StringVar(&o.sort, "sort", "", "override sort direction: asc, desc or none")
	cmd.Flags().BoolVar(&o.chart, "chart", false, "draw a bar chart under each table")
	cmd.Flags().IntVar(&o.width, "width", 40, "bar chart width")
}

func (a *app) runReports(out io.Writer, d *sale.Dataset, view *query.View, names []string, o reportOptions) error {
	c, err := a.catalog()
	if err != nil {
		return err
	}

	reports := c.Reports()
	if len(names) > 0 {
		reports = reports[:0]
		for _, name := range names {
			r, err := c.Get(name)
			if err != nil {
				return err
			}
			reports = append(reports, r)
		}
	}

	if o.sort != "" {
		dir, err := query.ParseSortDirection(o.sort)
		if err != nil {
			return err
		}
		for i := range reports {
			reports[i].Sort = dir
		}
	}

	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		res := r.Run(d, view)
		if err := display.RenderAggregate(out, "### "+r.Title, res); err != nil {
			return err
		}
		if o.chart {
			fmt.Fprintln(out)
			if err := display.BarChart(out, res, o.width); err != nil {
				return err
			}
		}
	}
	return nil
}

func newReportCmd(a *app) *cobra.Command {
	var o reportOptions
	cmd := &cobra.Command{
		Use:   "report [name...]",
		Short: "Run grouped reports (all reports when no name is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, view, err := a.loadView(o.filters)
			if err != nil {
				return err
			}
			return a.runReports(cmd.OutOrStdout(), d, view, args, o)
		},
	}
	o.bind(cmd)
	return cmd
}

func newGroupCmd(a *app) *cobra.Command {
	var (
		by, measure string
		o           reportOptions
	)
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group the filtered sales by any field",
		Example: `  coffee-sales group --by Weekday --measure sum
  coffee-sales group --by card -f coffee_name=Latte --sort asc --chart`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := sale.ParseField(by)
			if err != nil {
				return err
			}
			m, err := query.ParseMeasure(measure)
			if err != nil {
				return err
			}
			dir := query.Descending
			if o.sort != "" {
				if dir, err = query.ParseSortDirection(o.sort); err != nil {
					return err
				}
			}

			_, view, err := a.loadView(o.filters)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			res := query.GroupAggregate(view.Records(), field, m, dir)
			if err := display.RenderAggregate(out, "", res); err != nil {
				return err
			}
			if o.chart && len(res.Groups) > 0 {
				fmt.Fprintln(out)
				return display.BarChart(out, res, o.width)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&by, "by", "", "field to group by")
	cmd.Flags().StringVar(&measure, "measure", "count", "measure: count, sum or mean")
	_ = cmd.MarkFlagRequired("by")
	o.bind(cmd)
	return cmd
}

func newReportsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "List the available reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "name\tfield\tmeasure\tscope\tsort\ttitle")
			for _, r := range c.Reports() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Name, r.Field, r.Measure, r.Scope, r.Sort, r.Title)
			}
			return tw.Flush()
		},
	}
}

func newDashboardCmd(a *app) *cobra.Command {
	var o reportOptions
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the overview followed by every report with charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, view, err := a.loadView(o.filters)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := display.RenderMetrics(out, query.Summarize(d, view)); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nAnalysis Findings")
			o.chart = true
			return a.runReports(out, d, view, nil, o)
		},
	}
	o.bind(cmd)
	return cmd
}

func newValuesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "values",
		Short: "List the distinct values of every filterable field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDataset()
			if err != nil {
				return err
			}
			return display.RenderValues(cmd.OutOrStdout(), d)
		},
	}
}

func newServeCmd(a *app) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard queries as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDataset()
			if err != nil {
				return err
			}
			c, err := a.catalog()
			if err != nil {
				return err
			}
			if address == "" {
				address = a.cfg.Server.Address
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			r := server.NewRouter(server.NewHandler(d, c), a.cfg.Server.AllowedOrigins)
			return server.Serve(ctx, address, r)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "listen address, overrides server.address")
	return cmd
}
