package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/quill"
	"github.com/iw2rmb/quill/controller"
	"github.com/iw2rmb/quill/document"
	"github.com/iw2rmb/quill/export"
	"github.com/iw2rmb/quill/internal/config"
	"github.com/iw2rmb/quill/internal/logging"
)

func newRootCmd() *cobra.Command {
	var configPath, filePath string
	cmd := &cobra.Command{
		Use:   "quill",
		Short: "Terminal rich-text editor",
		Long: `quill edits rich text in the terminal: bold and italic runs, headers,
lists and links, driven from a toolbar or hotkeys.

Press F2 to log the document state, ctrl+q to quit.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEditor(configPath, filePath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "raw JSON document to open")

	cmd.AddCommand(newExportCmd(), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the quill version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quill %s\n", quill.Describe())
		},
	}
}

func runEditor(configPath, filePath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	ccfg, err := controllerConfig(cfg, logger)
	if err != nil {
		return err
	}
	if filePath != "" {
		content, err := loadRaw(filePath)
		if err != nil {
			return err
		}
		ccfg.Content = &content
	}

	c := controller.New(ccfg)
	logger.Info("editor started", slog.String("version", quill.Version()), slog.String("file", filePath))
	p := tea.NewProgram(c, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	c.Unmount()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

func openLogger(cfg config.Log) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := logging.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}
	if cfg.File == "" {
		return logging.New(nil, logging.Options{}), func() {}, nil
	}
	f, err := logging.OpenFile(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	return logging.New(f, logging.Options{Level: level, Format: format}), func() { _ = f.Close() }, nil
}

func loadRaw(path string) (document.Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return document.Content{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return decodeContent(f)
}

func decodeContent(r io.Reader) (document.Content, error) {
	raw, err := export.DecodeRaw(r)
	if err != nil {
		return document.Content{}, err
	}
	return export.FromRaw(raw, nil)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
