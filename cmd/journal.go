package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/talenthub/internal/attempt"
	"github.com/abhisek/talenthub/internal/logger"
	"github.com/abhisek/talenthub/internal/rewards"
	"github.com/abhisek/talenthub/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent attempts from the local journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := openRewards(cmd)
		if err != nil {
			return err
		}
		defer done()

		limit, _ := cmd.Flags().GetInt("limit")
		recs, err := svc.History(cmd.Context(), player(cmd), limit)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No attempts yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tPAPER\tLEVEL\tSCORE\tACCURACY\tTIME\tPOINTS\tSYNCED")
		for _, r := range recs {
			synced := "no"
			if r.RemoteID != nil {
				synced = fmt.Sprintf("#%d", *r.RemoteID)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%.0f%%\t%s\t%d\t%s\n",
				r.CompletedAt.Format("2006-01-02 15:04"), r.PaperTitle, r.PaperLevel,
				r.Correct, r.Total, r.Accuracy, attempt.FormatElapsed(r.TimeTaken), r.Points, synced)
		}
		return w.Flush()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show points, streaks, badges and the weekly leaderboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, done, err := openRewards(cmd)
		if err != nil {
			return err
		}
		defer done()

		ctx, who := cmd.Context(), player(cmd)
		st, err := svc.Stats(ctx, who)
		if err != nil {
			return err
		}
		profile, err := svc.Profile(ctx, who)
		if err != nil {
			return err
		}
		badges, err := svc.Badges(ctx, who)
		if err != nil {
			return err
		}
		board, err := svc.Leaderboard(ctx)
		if err != nil {
			return err
		}
		ledger, err := svc.WeekLedger(ctx, who)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Player:    %s\n", who)
		fmt.Fprintf(out, "Attempts:  %d (%d/%d correct, %.1f%% average)\n", st.Attempts, st.Correct, st.Questions, st.AvgAccuracy)
		fmt.Fprintf(out, "Best:      %d\n", st.BestScore)
		fmt.Fprintf(out, "Practice:  %s\n", attempt.FormatElapsed(st.TotalTime))
		fmt.Fprintf(out, "Points:    %d\n", profile.TotalPoints)
		fmt.Fprintf(out, "Streak:    %d days (longest %d)\n", profile.CurrentStreak, profile.LongestStreak)

		names := make([]string, 0, len(badges))
		for _, b := range badges {
			names = append(names, b.Icon()+" "+b.DisplayName())
		}
		if len(names) == 0 {
			names = append(names, "none yet")
		}
		fmt.Fprintf(out, "Badges:    %s\n", strings.Join(names, ", "))

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		if len(ledger) > 0 {
			fmt.Fprintln(w, "\nEarned this week")
			for _, ev := range ledger {
				earned := fmt.Sprintf("+%d", ev.Points)
				if ev.Kind == store.RewardBadge {
					earned = rewards.Badge(ev.Badge).Icon()
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.Timestamp.Format("Mon 15:04"), earned, ev.Reason)
			}
		}
		if len(board) > 0 {
			fmt.Fprintln(w, "\nThis week")
			for _, e := range board {
				fmt.Fprintf(w, "  %d.\t%s\t%d\n", e.Rank, e.Player, e.Points)
			}
		}
		return w.Flush()
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every journaled attempt, point and badge",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes all local history; re-run with --yes to confirm")
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Local journal cleared.")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{historyCmd, statsCmd} {
		c.Flags().String("player", "", "Player to report on (default: the configured player)")
	}
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to list; 0 lists all")
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}

func player(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("player"); p != "" {
		return p
	}
	return cfg.Player
}

// openRewards opens the journal and wraps it in the rewards service. The
// returned func closes the journal.
func openRewards(cmd *cobra.Command) (*rewards.Service, func(), error) {
	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	done := func() {
		st.Close()
		log.Sync()
	}
	return rewards.NewService(st, log), done, nil
}
