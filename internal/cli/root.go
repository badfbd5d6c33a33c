// Package cli implements the logdump command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/logdump"
	"github.com/arloliu/logdump/errs"
	"github.com/arloliu/logdump/internal/config"
	"github.com/arloliu/logdump/internal/logger"
	"github.com/arloliu/logdump/record"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errReported marks a failure whose message was already written to stderr.
var errReported = errors.New("failure already reported")

// app holds the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	log     zerolog.Logger
	stdout  io.Writer
	stderr  io.Writer
}

// Execute runs the command line and exits with its status.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line with args and returns the exit status.
func Run(args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(stderr, err)
		}

		return 1
	}

	return 0
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      viper.New(),
		stdout: stdout,
		stderr: stderr,
	}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "logdump [flags] FILE...",
		Short: "Stream the records of exported JSON log dumps",
		Long: `logdump reads log dumps (a JSON array of log entries, as written by
"gcloud logging read --format=json") one record at a time and prints each
record's text payload followed by the total count.

Dumps may be plain or compressed with gzip, zstd, s2 or lz4; the format is
detected from the leading bytes unless --compression is given.

Examples:
  logdump dump.json
  logdump --count-only day1.json.gz day2.json.zst
  logdump --min-severity warning --unique dump.json`,
		Args:              cobra.MinimumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runPrint,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: $HOME/.logdump.yaml or ./.logdump.yaml)")
	pf.String(config.KeyCompression, config.CompressionAuto, "input compression: auto, none, gzip, zstd, s2, lz4")
	pf.String(config.KeyMinSeverity, "", "skip records below this severity (e.g. warning)")
	pf.Bool(config.KeyUnique, false, "skip records already seen (same log name, timestamp, severity and payload)")
	pf.Int(config.KeyChunkSize, 0, "read chunk size in bytes (0 selects the default)")
	pf.String(config.KeyLogLevel, "warn", "diagnostic log level: trace, debug, info, warn, error, off")
	pf.String(config.KeyLogFormat, "console", "diagnostic log format: console, json")

	rootCmd.Flags().Bool(config.KeyCountOnly, false, "print only the final count")
	rootCmd.Flags().StringP(config.KeyOutput, "o", config.OutputText, "record output: text (payload only), json")

	rootCmd.AddCommand(newStatsCommand(a), newExportCommand(a))

	return rootCmd
}

// setup resolves the configuration once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
		return err
	}
	if err := config.Load(a.v, a.cfgFile); err != nil {
		return err
	}

	cfg, err := config.FromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: a.stderr,
	}).With().Str("run_id", uuid.NewString()).Logger()
	a.log.Debug().Str("config", a.v.ConfigFileUsed()).Str("command", cmd.Name()).Msg("configuration loaded")

	return nil
}

func (a *app) readerOptions() []logdump.Option {
	opts := []logdump.Option{logdump.WithLogger(logger.Named(a.log, "stream"))}

	if ct, auto, err := a.cfg.CompressionType(); err == nil && !auto {
		opts = append(opts, logdump.WithCompression(ct))
	}
	if a.cfg.ChunkSize > 0 {
		opts = append(opts, logdump.WithChunkSize(a.cfg.ChunkSize))
	}

	return opts
}

// visit streams every kept record of paths to fn in order.
//
// Inputs that cannot be opened are reported and skipped. The first record error is
// reported with its element index and ends the walk with errReported.
func (a *app) visit(paths []string, fn func(e record.LogEntry) error) error {
	opts := a.readerOptions()
	f := newFilter(a.cfg)

	for _, path := range paths {
		r, err := logdump.Open(path, opts...)
		if err != nil {
			if errs.KindOf(err) == errs.KindOpen {
				fmt.Fprintf(a.stderr, "%s: Error reading file: %v\n", path, err)
				continue
			}

			return err
		}

		err = a.visitReader(r, f, fn)
		stats := r.Stats()
		_ = r.Close()

		a.log.Debug().
			Str("path", path).
			Int("elements", stats.Elements).
			Int64("bytes_read", stats.BytesRead).
			Int("peak_buffered", stats.PeakBuffered).
			Msg("dump done")

		if err != nil {
			return err
		}
	}

	if f.tracker != nil && f.tracker.Duplicates() > 0 {
		a.log.Info().Int("duplicates", f.tracker.Duplicates()).Msg("duplicate records skipped")
	}

	return nil
}

func (a *app) visitReader(r *logdump.Reader, f *filter, fn func(e record.LogEntry) error) error {
	for entry, err := range r.All() {
		if err != nil {
			var elemErr *errs.ElementError
			if errors.As(err, &elemErr) {
				fmt.Fprintf(a.stderr, "record(idx=%d) error: %v: %v\n", elemErr.Index, elemErr.Kind.Sentinel(), elemErr.Err)
				return errReported
			}

			return err
		}

		if !f.keep(entry) {
			continue
		}
		if err := fn(entry); err != nil {
			return err
		}
	}

	return nil
}
