package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"calldash/internal/model"
	"calldash/internal/pagination"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		flags filterFlags
		page  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of callers as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page < 1 {
				return fmt.Errorf("--page must be >= 1, got %d", page)
			}
			p, fetch, err := opts.newPager(&flags)
			if err != nil {
				return err
			}
			if err := p.LoadPage(cmd.Context(), page, fetch); err != nil {
				return fmt.Errorf("load page %d: %w", page, err)
			}
			return renderTable(cmd, p.CurrentPageData(), p.State())
		},
	}

	flags.register(cmd, pagination.DefaultPageSize)
	cmd.Flags().IntVar(&page, "page", 1, "page number, 1-based")
	return cmd
}

func renderTable(cmd *cobra.Command, rows []model.Caller, st pagination.State) error {
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "no callers found")
	} else {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "PHONE\tNAME\tORGANIZATION\tCALLS\tAVG (s)\tLAST CALL\tTAGS")
		for _, c := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.1f\t%s\t%s\n",
				c.PhoneNumber,
				dash(c.DisplayName),
				c.Organization,
				c.TotalCalls,
				c.AvgDurationSec,
				c.LastCallAt.Local().Format(time.DateTime),
				dash(strings.Join(c.Tags, ",")),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	nav := make([]string, 0, 2)
	if st.HasPrev {
		nav = append(nav, fmt.Sprintf("prev: --page %d", st.CurrentPage-1))
	}
	if st.HasNext {
		nav = append(nav, fmt.Sprintf("next: --page %d", st.CurrentPage+1))
	}
	footer := fmt.Sprintf("page %d/%d (%d records)", st.CurrentPage, st.TotalPages, st.TotalRecords)
	if len(nav) > 0 {
		footer += "  " + strings.Join(nav, "  ")
	}
	_, err := fmt.Fprintln(out, footer)
	return err
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
