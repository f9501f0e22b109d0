package main

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/tableup"
	"github.com/iw2rmb/tableup/doc"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the HTML tables read on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return inspect(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.moduleOptions())
		},
	}
}

// inspect prints one line per table of r: its grid size, merged cell count
// and pixel extent after import.
func inspect(r io.Reader, w io.Writer, opt tableup.Options) error {
	mod := tableup.New(doc.New(doc.Options{}), opt)
	defer mod.Close()

	ids, err := mod.Engine().PasteHTML(mod.Tree().Root(), -1, r)
	if err != nil {
		return err
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Table", "Rows", "Cols", "Merged", "Width", "Height"})
	tw.SetBorder(false)
	for _, id := range ids {
		t, ok := mod.Engine().Table(id)
		if !ok {
			continue
		}
		merged := 0
		for _, c := range t.Cells() {
			if !c.Span.Unit() {
				merged++
			}
		}
		tw.Append([]string{
			id,
			strconv.Itoa(t.RowCount()),
			strconv.Itoa(t.ColCount()),
			strconv.Itoa(merged),
			strconv.Itoa(t.Width()),
			strconv.Itoa(t.Height()),
		})
	}
	tw.Render()
	return nil
}
