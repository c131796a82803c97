// Package report renders caller listings for download.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"calldash/internal/model"
)

// CallerHeader is the first CSV record of every caller export.
var CallerHeader = []string{
	"id", "phone_number", "display_name", "organization",
	"total_calls", "total_duration_sec", "avg_duration_sec", "last_call_at", "tags",
}

// CallerCSV writes callers as RFC 4180 records. Tags are joined with ';'.
type CallerCSV struct {
	w *csv.Writer
}

// NewCallerCSV writes the header and returns a writer for the rows.
func NewCallerCSV(w io.Writer) (*CallerCSV, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CallerHeader); err != nil {
		return nil, err
	}
	return &CallerCSV{w: cw}, nil
}

// Write appends rows. Output is buffered until Flush.
func (c *CallerCSV) Write(rows []model.Caller) error {
	for _, r := range rows {
		if err := c.w.Write([]string{
			r.ID,
			r.PhoneNumber,
			r.DisplayName,
			r.Organization,
			strconv.Itoa(r.TotalCalls),
			strconv.FormatInt(r.TotalDurationSec, 10),
			strconv.FormatFloat(r.AvgDurationSec, 'f', 2, 64),
			r.LastCallAt.UTC().Format(time.RFC3339),
			strings.Join(r.Tags, ";"),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (c *CallerCSV) Flush() error {
	c.w.Flush()
	return c.w.Error()
}
