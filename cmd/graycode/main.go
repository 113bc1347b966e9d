package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/graycode/internal/batch"
	"github.com/san-kum/graycode/internal/config"
	"github.com/san-kum/graycode/internal/export"
	"github.com/san-kum/graycode/internal/gray"
	"github.com/san-kum/graycode/internal/report"
	"github.com/san-kum/graycode/internal/sequence"
	"github.com/san-kum/graycode/internal/store"
	"github.com/san-kum/graycode/internal/tui"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	mode       string
	format     string
	outFile    string
	preset     string
	plot       bool
	save       bool
	workers    int
	verify     bool
	svgFile    string
)

// main registers the graycode commands. With no subcommand the interactive
// converter starts.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graycode",
		Short: "binary and gray code converter",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg.Mode, store.New(cfg.DataDir), "")
		},
	}
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&mode, "mode", "m", "gray-to-binary", "conversion mode (gray-to-binary|g2b|binary-to-gray|b2g)")

	convertCmd := &cobra.Command{
		Use:   "convert [bits]",
		Short: "convert a bit string and print the derivation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text|json|csv)")
	convertCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the report to a file")
	convertCmd.Flags().StringVar(&preset, "preset", "", "use a named sample input")
	convertCmd.Flags().BoolVar(&plot, "plot", false, "plot the accumulated value per step")
	convertCmd.Flags().BoolVar(&save, "save", false, "save the conversion to the data directory")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "convert one bit string per line (stdin when file is - or omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel workers (0 = cpu count)")

	tableCmd := &cobra.Command{
		Use:   "table [width]",
		Short: "list every gray code of a given width",
		Args:  cobra.ExactArgs(1),
		RunE:  runTable,
	}
	tableCmd.Flags().BoolVar(&plot, "plot", false, "plot code values by position")
	tableCmd.Flags().BoolVar(&verify, "verify", false, "check that neighbours differ in one bit")
	tableCmd.Flags().StringVar(&svgFile, "svg", "", "write a timing diagram to an svg file")

	tuiCmd := &cobra.Command{
		Use:   "tui [bits]",
		Short: "interactive converter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			return tui.Run(cfg.Mode, store.New(cfg.DataDir), input)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved conversions",
		RunE:  listConversions,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "print a saved conversion report",
		Args:  cobra.ExactArgs(1),
		RunE:  showConversion,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list sample inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tINPUT\tNOTE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, p.Mode, p.Input, p.Note)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("refusing to overwrite %s", args[0])
			}
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(convertCmd, batchCmd, tableCmd, tuiCmd, listCmd, showCmd, presetsCmd, initCmd)
	return rootCmd
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loadConfig layers the config file (if any) under flags the user set
// explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		slog.Debug("loaded config", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		m, err := gray.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		cfg.Mode = m
	}
	if flags.Changed("data") || configFile == "" {
		cfg.DataDir = dataDir
	}
	if flags.Lookup("format") != nil && (flags.Changed("format") || configFile == "") {
		f, err := report.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		cfg.Format = f
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("plot") {
		cfg.Plot.Enabled = plot
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var input string
	switch {
	case preset != "":
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if !cmd.Flags().Changed("mode") {
			if cfg.Mode, err = gray.ParseMode(p.Mode); err != nil {
				return err
			}
		}
		input = p.Input
	case len(args) == 1:
		input = args[0]
	default:
		return errors.New("convert needs a bit string or --preset")
	}

	res, err := gray.ConvertChecked(cfg.Mode, input)
	if err != nil {
		return err
	}
	slog.Debug("converted", "mode", cfg.Mode, "bits", len(input), "result", res.Result)

	write := func(w io.Writer) error {
		if err := report.Write(w, cfg.Format, cfg.Mode, input, res); err != nil {
			return err
		}
		if cfg.Format == report.FormatText {
			_, err := fmt.Fprintln(w)
			return err
		}
		return nil
	}

	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		if err := writeClose(f, write); err != nil {
			return fmt.Errorf("write %s: %w", outFile, err)
		}
	} else if err := write(cmd.OutOrStdout()); err != nil {
		return err
	}

	if cfg.Plot.Enabled {
		if graph := report.Plot(res, cfg.Plot.Width, cfg.Plot.Height); graph != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", graph)
		}
	}

	if save {
		st := store.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(cfg.Mode, input, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", id)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	lines, err := batch.ReadLines(in)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	items, err := batch.Run(ctx, cfg.Mode, lines, cfg.Workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "LINE\t%s\t%s\n", strings.ToUpper(cfg.Mode.SourceLabel()), strings.ToUpper(cfg.Mode.TargetLabel()))
	for _, it := range items {
		if it.Err != nil {
			slog.Warn("skipped line", "line", it.Line, "err", it.Err)
			fmt.Fprintf(w, "%d\t%s\terror: %v\n", it.Line, it.Input, it.Err)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", it.Line, it.Input, it.Result.Result)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if n := batch.Failed(items); n > 0 {
		return fmt.Errorf("%d of %d inputs invalid: %w", n, len(items), gray.ErrInvalidInput)
	}
	return nil
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var width int
	if _, err := fmt.Sscanf(args[0], "%d", &width); err != nil {
		return fmt.Errorf("invalid width %q: %w", args[0], err)
	}

	entries, err := sequence.Table(width)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tBINARY\tGRAY")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Value, e.Binary, e.Gray)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if verify {
		if err := sequence.Verify(entries); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nok: every neighbouring pair differs in exactly one bit")
	}

	if cfg.Plot.Enabled {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", sequence.Plot(entries, cfg.Plot.Width, cfg.Plot.Height))
	}

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.TimingSVG(entries, 0, 0)), 0644); err != nil {
			return err
		}
		slog.Info("wrote timing diagram", "path", svgFile)
	}
	return nil
}

func listConversions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runs, err := store.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no conversions saved")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tBITS\tINPUT\tOUTPUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bits,
			run.Input,
			run.Output,
		)
	}
	return w.Flush()
}

func showConversion(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	text, err := store.New(cfg.DataDir).LoadReport(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// writeClose runs write against wc and returns the close error as well.
func writeClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
