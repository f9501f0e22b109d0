package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/tableup"
	"github.com/iw2rmb/tableup/doc"
	"github.com/iw2rmb/tableup/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tableup-demo",
		Short:        "Edit tables in the terminal",
		Long:         "Pick a table size, then merge, split, resize and color cells with the mouse and keyboard.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return runEditor(cfg)
		},
	}
	addConfigFlags(root.PersistentFlags())
	root.AddCommand(newNormalizeCommand(), newInspectCommand(), newConfigCommand(), newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), tableup.VersionTag())
		},
	}
}

// newLogger opens the configured log destination. The returned func closes
// it.
func newLogger(cfg config) (*logrus.Logger, func(), error) {
	var (
		w     io.Writer = io.Discard
		close           = func() {}
	)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, close = f, func() { _ = f.Close() }
	}
	l, err := logging.New(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		close()
		return nil, nil, err
	}
	return l, close, nil
}

func runEditor(cfg config) error {
	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	opt := cfg.moduleOptions()
	opt.Logger = log
	tree := doc.New(doc.Options{})
	mod := tableup.New(tree, opt)
	defer mod.Close()

	p := tea.NewProgram(newApp(mod), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("program failed")
		return err
	}
	return nil
}
