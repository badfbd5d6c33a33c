package cli

import (
	"encoding/json"
	"fmt"

	"github.com/arloliu/logdump/internal/config"
	"github.com/arloliu/logdump/record"
	"github.com/spf13/cobra"
)

// runPrint prints each record's payload (or the record as JSON) and the total.
func (a *app) runPrint(_ *cobra.Command, paths []string) error {
	enc := json.NewEncoder(a.stdout)
	count := 0

	err := a.visit(paths, func(e record.LogEntry) error {
		count++
		if a.cfg.CountOnly {
			return nil
		}

		if a.cfg.Output == config.OutputJSON {
			return enc.Encode(e)
		}
		_, err := fmt.Fprintln(a.stdout, e.TextPayload)

		return err
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.stdout, "Log entries count: %d\n", count)

	return err
}
