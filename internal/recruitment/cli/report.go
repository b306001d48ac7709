package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gartstein/recruitment/internal/recruitment/controller"
	e "github.com/gartstein/recruitment/internal/recruitment/errors"
	"github.com/gartstein/recruitment/internal/recruitment/events"
	"github.com/gartstein/recruitment/internal/recruitment/models"
	"github.com/gartstein/recruitment/internal/recruitment/seed"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var views = []string{"all", "contractors", "jobs", "available", "unassigned", "assigned", "cost"}

func newReportCommand(a *app) *cobra.Command {
	var (
		seedPath string
		view     string
		minCost  float64
		maxCost  float64
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Seed a registry and print one of its views",
		Long: `Report seeds an in-memory registry and prints a view over it.

The seed comes from --seed, then seed.path in the configuration, then the
built-in demo document. Views: ` + strings.Join(views, ", ") + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isView(view) {
				return fmt.Errorf("%w: unknown view %q, want one of %s",
					e.ErrValidation, view, strings.Join(views, ", "))
			}

			producer, closeProducer, err := a.producer()
			if err != nil {
				return err
			}
			defer closeProducer()

			reg := controller.NewRegistry(producer, a.logger)
			doc, err := a.seedDocument(seedPath)
			if err != nil {
				return err
			}
			if err := seed.NewSeeder(a.cfg.ID.Length, a.logger).Apply(reg, doc); err != nil {
				return err
			}
			if err := reg.CheckInvariants(); err != nil {
				return fmt.Errorf("registry is inconsistent after seeding: %w", err)
			}
			return render(cmd.OutOrStdout(), reg, view, minCost, maxCost)
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "", "seed document (YAML)")
	cmd.Flags().StringVar(&view, "view", "all", "view to print")
	cmd.Flags().Float64Var(&minCost, "min", 0, "minimum job cost for the cost view")
	cmd.Flags().Float64Var(&maxCost, "max", math.Inf(1), "maximum job cost for the cost view")
	return cmd
}

// producer returns the event producer for the configured stream and a
// func releasing it.
func (a *app) producer() (controller.EventProducer, func(), error) {
	if !a.cfg.Kafka.Enabled {
		return events.Discard, func() {}, nil
	}
	p, err := events.NewProducer(events.ProducerConfig{
		Brokers:     a.cfg.Kafka.Brokers,
		Topic:       a.cfg.Kafka.Topic,
		QueueSize:   a.cfg.Kafka.QueueSize,
		DialTimeout: a.cfg.Kafka.DialTimeout,
	}, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Kafka producer: %w", err)
	}
	return p, p.Close, nil
}

func (a *app) seedDocument(flagPath string) (*seed.Document, error) {
	path := flagPath
	if path == "" {
		path = a.cfg.Seed.Path
	}
	if path == "" {
		a.logger.Debug("no seed configured, using the built-in document")
		return seed.Default(), nil
	}
	a.logger.Debug("loading seed", zap.String("path", path))
	return seed.Load(path)
}

func isView(v string) bool {
	for _, known := range views {
		if v == known {
			return true
		}
	}
	return false
}

func render(w io.Writer, reg *controller.Registry, view string, minCost, maxCost float64) error {
	switch view {
	case "all":
		writeContractors(w, "Contractors", reg.Contractors())
		fmt.Fprintln(w)
		writeJobs(w, "Jobs", reg.Jobs())
	case "contractors":
		writeContractors(w, "Contractors", reg.Contractors())
	case "jobs":
		writeJobs(w, "Jobs", reg.Jobs())
	case "available":
		writeContractors(w, "Available contractors", reg.AvailableContractors())
	case "unassigned":
		writeJobs(w, "Unassigned jobs", reg.UnassignedJobs())
	case "assigned":
		writeJobs(w, "Assigned jobs", reg.AssignedJobs())
	case "cost":
		jobs, err := reg.JobsByCost(minCost, maxCost)
		if err != nil {
			return err
		}
		writeJobs(w, fmt.Sprintf("Jobs costing %s to %s", money(minCost), money(maxCost)), jobs)
	}
	return nil
}

func writeContractors(w io.Writer, title string, contractors []*models.Contractor) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(contractors) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  none"))
		return
	}
	for _, c := range contractors {
		status := successStyle.Render("available")
		if start, engaged := c.StartDate(); engaged {
			status = "starts " + start.Format(dateLayout)
		}
		fmt.Fprintf(w, "  %-32s %10s/h  %s\n", c.String(), money(c.HourlyWage()), status)
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  %d contractor(s)", len(contractors))))
}

func writeJobs(w io.Writer, title string, jobs []*models.Job) {
	fmt.Fprintln(w, titleStyle.Render(title))
	if len(jobs) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  none"))
		return
	}
	for _, j := range jobs {
		line := fmt.Sprintf("  %-32s %s %12s  %-15s", j.String(), j.Date().Format(dateLayout), money(j.Cost()), j.Status())
		if c := j.Contractor(); c != nil {
			line += "  " + c.String()
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  %d job(s)", len(jobs))))
}

func money(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("$%.2f", v)
}
