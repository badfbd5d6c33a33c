package cli

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/arloliu/logdump/record"
	"github.com/spf13/cobra"
)

// dumpStats aggregates record counts across all inputs.
type dumpStats struct {
	total      int
	bySeverity map[record.Severity]int
	byLogName  map[string]int
}

func newDumpStats() *dumpStats {
	return &dumpStats{
		bySeverity: make(map[record.Severity]int),
		byLogName:  make(map[string]int),
	}
}

func (s *dumpStats) add(e record.LogEntry) {
	s.total++
	s.bySeverity[e.Severity]++
	s.byLogName[e.LogName]++
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE...",
		Short: "Count records per severity and per log name",
		Long: `Stats reads every dump and prints how many records it holds per
severity (in severity order) and per log name, followed by the total.
The --min-severity and --unique filters apply before counting.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, paths []string) error {
			stats := newDumpStats()
			if err := a.visit(paths, func(e record.LogEntry) error {
				stats.add(e)
				return nil
			}); err != nil {
				return err
			}

			return stats.write(a)
		},
	}
}

func (s *dumpStats) write(a *app) error {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "SEVERITY\tCOUNT")
	for _, sev := range record.Severities() {
		if n := s.bySeverity[sev]; n > 0 {
			fmt.Fprintf(tw, "%s\t%d\n", sev, n)
		}
	}

	fmt.Fprintln(tw, "\nLOG NAME\tCOUNT")
	names := make([]string, 0, len(s.byLogName))
	for name := range s.byLogName {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\n", name, s.byLogName[name])
	}

	fmt.Fprintf(tw, "\nTotal:\t%d\n", s.total)

	return tw.Flush()
}
