package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nconklindev/guestlist/internal/config"
	"github.com/nconklindev/guestlist/internal/report"
	"github.com/nconklindev/guestlist/internal/sheet"
	"github.com/nconklindev/guestlist/internal/types"
	"github.com/nconklindev/guestlist/internal/ui"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guestlist",
		Short: "Build guest and dietary reports from a guest list spreadsheet",
		Long: `guestlist reads a guest list (.xlsx or .csv) and derives the guests each
attendee brought plus a combined list of everyone with a dietary restriction.

Without a subcommand it opens an interactive file picker.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runUI,
	}

	cmd.PersistentFlags().String("config", "", "Path to the YAML config file")
	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [input]",
		Short: "Run the report without the interactive UI",
		Long: `Run the report once and print two counts, one per line: attendees who
brought a guest, then guests with a dietary restriction.

The combined dietary table is written to output_path only when write_output
is true in the config, and to markdown_path when that is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.InputPath = args[0]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := newLogger(cmd.ErrOrStderr(), verbose).With("run", uuid.NewString())
			slog.SetDefault(logger)

			_, err = runReport(cmd.OutOrStdout(), logger, cfg)
			return err
		},
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.FindConfigFile(path))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// runReport loads cfg.InputPath, builds the report and writes the enabled
// outputs. Each output is staged in a temporary file next to its target and
// only renamed into place once every output has been written, so a failing
// run leaves nothing behind.
func runReport(out io.Writer, logger *slog.Logger, cfg *config.Config) (*types.Result, error) {
	data, err := sheet.ReadFileData(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("guest list loaded", "path", cfg.InputPath, "columns", len(data.Headers), "rows", len(data.Rows))

	res, err := report.NewBuilder(out, logger).Run(data, nil)
	if err != nil {
		return nil, err
	}
	res.InputFile = cfg.InputPath
	if cfg.WriteOutput {
		res.OutputFile = cfg.OutputPath
	}

	var staged []stagedFile
	defer func() {
		for _, f := range staged {
			os.Remove(f.tmp)
		}
	}()

	if cfg.WriteOutput {
		f, err := stageFile(cfg.OutputPath, func(w io.Writer) error {
			return sheet.EncodeEntries(w, filepath.Ext(cfg.OutputPath), res.Dietary)
		})
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", cfg.OutputPath, err)
		}
		staged = append(staged, f)
	}

	if cfg.MarkdownPath != "" {
		f, err := stageFile(cfg.MarkdownPath, func(w io.Writer) error {
			return report.WriteMarkdown(w, res)
		})
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", cfg.MarkdownPath, err)
		}
		staged = append(staged, f)
	}

	for i, f := range staged {
		if err := os.Rename(f.tmp, f.path); err != nil {
			for _, done := range staged[:i] {
				os.Remove(done.path)
			}
			return nil, fmt.Errorf("write %s: %w", f.path, err)
		}
		logger.Info("output written", "path", f.path, "entries", len(res.Dietary))
	}

	return res, nil
}

type stagedFile struct {
	tmp  string
	path string
}

// stageFile writes to a temporary file in the directory of path.
func stageFile(path string, write func(io.Writer) error) (stagedFile, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return stagedFile{}, err
	}
	f := stagedFile{tmp: tmp.Name(), path: path}

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(f.tmp)
		return stagedFile{}, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(f.tmp)
		return stagedFile{}, err
	}
	if err := os.Chmod(f.tmp, 0o644); err != nil {
		os.Remove(f.tmp)
		return stagedFile{}, err
	}
	return f, nil
}

func runUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The UI owns the terminal, so logs go to a file.
	logPath, err := xdg.StateFile(filepath.Join(config.AppName, config.AppName+".log"))
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer logFile.Close()

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(logFile, verbose).With("run", uuid.NewString())
	slog.SetDefault(logger)

	startDir := ""
	if cfg.InputPath != "" {
		startDir = filepath.Dir(cfg.InputPath)
	}

	p := tea.NewProgram(ui.InitialModel(startDir, logger), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
