package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/tableup"
	"github.com/iw2rmb/tableup/doc"
)

func newNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Read HTML tables on stdin and write them back in canonical form",
		Long: "Ragged rows are padded and overlapping spans trimmed, so every table " +
			"on the output is a complete grid with explicit column widths.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			opt := cfg.moduleOptions()
			opt.Logger = log
			return normalize(cmd.InOrStdin(), cmd.OutOrStdout(), opt)
		},
	}
}

// normalize pastes every table of r into a fresh document and exports them.
func normalize(r io.Reader, w io.Writer, opt tableup.Options) error {
	mod := tableup.New(doc.New(doc.Options{}), opt)
	defer mod.Close()

	ids, err := mod.Engine().PasteHTML(mod.Tree().Root(), -1, r)
	if err != nil {
		return err
	}
	for _, id := range ids {
		var buf bytes.Buffer
		if err := mod.Engine().ExportHTML(id, &buf); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, buf.String()); err != nil {
			return err
		}
	}
	return nil
}
