package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/arloliu/logdump/compress"
	"github.com/arloliu/logdump/format"
	"github.com/arloliu/logdump/record"
	"github.com/spf13/cobra"
)

func newExportCommand(a *app) *cobra.Command {
	var out, outCompression string

	cmd := &cobra.Command{
		Use:   "export --out PATH FILE...",
		Short: "Write the filtered records of all inputs as one JSON array",
		Long: `Export merges the records of every input into a single dump, applying the
--min-severity and --unique filters. The output may be compressed with
--out-compression; it can be read back by logdump itself.

Examples:
  logdump export --out merged.json.zst --out-compression zstd a.json b.json.gz
  logdump export --out errors.json --min-severity error dump.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, paths []string) error {
			ct, err := format.ParseCompressionType(outCompression)
			if err != nil {
				return err
			}

			n, err := a.export(paths, out, ct)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(a.stdout, "Exported %d records to %s\n", n, out)

			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file")
	cmd.Flags().StringVar(&outCompression, "out-compression", "none", "output compression: none, gzip, zstd, s2, lz4")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (a *app) export(paths []string, out string, ct format.CompressionType) (n int, err error) {
	codec, err := compress.CreateCodec(ct, "export")
	if err != nil {
		return 0, err
	}

	f, err := os.Create(out)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", out, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	cw, err := codec.NewWriter(f)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(cw)
	if _, err := bw.WriteString("["); err != nil {
		return 0, err
	}

	err = a.visit(paths, func(e record.LogEntry) error {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if n > 0 {
			if err := bw.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
		if _, err := bw.Write(data); err != nil {
			return err
		}
		n++

		return nil
	})
	if err != nil {
		_ = cw.Close()
		return n, err
	}

	if _, err := bw.WriteString("\n]\n"); err != nil {
		return n, err
	}
	if err := bw.Flush(); err != nil {
		return n, err
	}
	if err := cw.Close(); err != nil {
		return n, err
	}

	a.log.Debug().Str("path", out).Str("compression", ct.String()).Int("records", n).Msg("export written")

	return n, nil
}
