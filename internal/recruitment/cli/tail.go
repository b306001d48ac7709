package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	e "github.com/gartstein/recruitment/internal/recruitment/errors"
	"github.com/gartstein/recruitment/internal/recruitment/events"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTailCommand(a *app) *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print domain events from the Kafka topic until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Kafka.Enabled {
				return fmt.Errorf("%w: kafka is disabled, set kafka.enabled to tail events", e.ErrValidation)
			}
			if groupID == "" {
				groupID = a.cfg.Kafka.GroupID
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			consumer := events.NewConsumer(a.cfg.Kafka.Brokers, groupID, a.cfg.Kafka.Topic, a.logger)
			defer consumer.Close()

			out := cmd.OutOrStdout()
			consumer.RegisterHandler(func(_ context.Context, ev events.Event) error {
				writeEvent(out, ev)
				return nil
			})

			a.logger.Info("tailing events",
				zap.Strings("brokers", a.cfg.Kafka.Brokers),
				zap.String("topic", a.cfg.Kafka.Topic),
				zap.String("group_id", groupID),
			)
			return consumer.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "", "consumer group (defaults to kafka.group_id)")
	return cmd
}

func writeEvent(w io.Writer, ev events.Event) {
	line := fmt.Sprintf("%s  %-18s", ev.OccurredAt.Format(time.RFC3339), ev.Type)
	if ev.Job != nil {
		line += fmt.Sprintf("  %s - %s [%s]", ev.Job.ID, ev.Job.Title, ev.Job.Status)
	}
	if ev.Contractor != nil {
		line += fmt.Sprintf("  %s - %s %s", ev.Contractor.ID, ev.Contractor.FirstName, ev.Contractor.LastName)
	}
	fmt.Fprintln(w, line)
}
