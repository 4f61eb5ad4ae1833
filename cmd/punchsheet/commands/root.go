// Package commands provides the CLI commands for punchsheet.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tmc/punchsheet/internal/config"
	"github.com/tmc/punchsheet/internal/dates"
	"github.com/tmc/punchsheet/internal/logging"
	"github.com/tmc/punchsheet/internal/punchclock"
	"github.com/tmc/punchsheet/internal/render"
	"github.com/tmc/punchsheet/internal/session"
)

// Version is set at build time.
var Version = "dev"

type options struct {
	start         string
	end           string
	skipMalformed bool
	noColor       bool
	logLevel      string
	configPath    string

	cfg *config.Config
	// fs, now and in are replaced in tests.
	fs  afero.Fs
	now func() time.Time
	in  io.Reader
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{fs: afero.NewOsFs(), now: time.Now, in: os.Stdin})
}

func newRootCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "punchsheet",
		Short: "Show your Connecteam punch-clock timesheet",
		Long: `punchsheet fetches the shifts you punched on the Connecteam time clock
and prints them as a table, newest day first.

On first use it asks for the cookie header of a logged-in dashboard request
and keeps the session in ~/.config/connectteam.json.`,
		Version:      Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimesheet(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/punchsheet/config.jsonc)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colors")

	cmd.Flags().StringVarP(&opts.start, "start", "s", "7 days ago", "First day to show, e.g. 2023-02-01 or \"last monday\"")
	cmd.Flags().StringVarP(&opts.end, "end", "e", "today", "Last day to show")
	cmd.Flags().BoolVar(&opts.skipMalformed, "skip-malformed", false, "Skip shifts without punch timestamps instead of failing")

	cmd.AddCommand(newTagsCommand(opts))
	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.fs, o.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.noColor {
		cfg.NoColor = true
	}
	o.cfg = cfg

	logging.Setup(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel), true)
	return nil
}

func (o *options) client() *punchclock.Client {
	c := punchclock.NewClient(o.cfg.BaseURL, o.cfg.Timeout)
	c.Timezone = o.cfg.Timezone
	return c
}

func (o *options) sessions(cmd *cobra.Command) session.Provider {
	return &session.StoredOrPrompt{
		File: session.NewFileProvider(o.cfg.SessionFile),
		Prompt: &session.PromptProvider{
			In:        o.in,
			Out:       cmd.ErrOrStderr(),
			StorePath: o.cfg.SessionFile,
		},
	}
}

func runTimesheet(cmd *cobra.Command, opts *options) error {
	rng, err := dates.ParseRange(opts.start, opts.end, opts.now())
	if err != nil {
		return fmt.Errorf("parsing CLI dates: %w", err)
	}
	logging.Debug().
		Str("start", rng.Start.Format(dates.Layout)).
		Str("end", rng.End.Format(dates.Layout)).
		Msg("fetching timesheet")

	entries, err := opts.client().Timesheet(cmd.Context(), opts.sessions(cmd), rng.Start, rng.End,
		punchclock.Parser{SkipMalformed: opts.skipMalformed})
	if err != nil {
		return err
	}
	logging.Info().
		Int("shifts", len(entries)).
		Dur("worked", punchclock.Entries(entries).Duration()).
		Msg("timesheet loaded")

	sink := render.NewTableSink(cmd.OutOrStdout(), !opts.cfg.NoColor)
	render.Timesheet(entries, sink)
	return sink.Flush()
}
