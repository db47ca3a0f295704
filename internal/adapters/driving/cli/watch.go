package cli

import (
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/inkwell-labs/bookdrip/internal/core/domain"
	"github.com/inkwell-labs/bookdrip/internal/watcher"
)

var (
	watchPolicy string
	watchSettle time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and ingest books dropped into it",
	Long: `Watches the given inbox directory and ingests every supported book
file created in it. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchPolicy, "policy", "p", "", "segmentation policy: by_sense or by_line")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 500*time.Millisecond, "delay before ingesting a new file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	policyName := watchPolicy
	if policyName == "" && configStore != nil {
		policyName = configStore.GetString("default_policy")
	}
	if policyName == "" {
		policyName = "by_sense"
	}
	policy, err := domain.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watcher.New(ingestService, ownerID(), args[0], policy,
		watcher.WithSettleDelay(watchSettle),
		watcher.WithRateLimit(rate.Limit(2)),
	)

	cmd.Printf("Watching %s (policy %s). Press Ctrl-C to stop.\n", args[0], policy)
	return w.Run(ctx)
}
