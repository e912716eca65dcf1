package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ssargent/easytables/pkg/codec"
	"github.com/ssargent/easytables/pkg/tables"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatLine  = "line"
)

// loadSummary is the JSON shape of the load command
type loadSummary struct {
	State    string              `json:"state"`
	LoadedAt time.Time           `json:"loaded_at"`
	Tables   []tables.TableStats `json:"tables"`
}

func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// outputStatsTable displays per-table row counts in table format
func outputStatsTable(w io.Writer, stats []tables.TableStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "TABLE\tROWS\tSTATUS")
	for _, s := range stats {
		status := "loaded"
		if s.Skipped {
			status = "skipped"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", s.Name, s.Rows, status)
	}
	return tw.Flush()
}

// outputStats displays the result of a load
func outputStats(w io.Writer, format string, m *tables.Manager) error {
	switch format {
	case formatJSON:
		return outputJSON(w, loadSummary{
			State:    m.State().String(),
			LoadedAt: m.LoadedAt(),
			Tables:   m.Stats(),
		})
	case formatTable, "":
		return outputStatsTable(w, m.Stats())
	}
	return fmt.Errorf("unknown output format %q", format)
}

// outputRecord displays one record as JSON or as its encoded line
func outputRecord(w io.Writer, format string, rec tables.Record, delim byte) error {
	switch format {
	case formatJSON, "":
		return outputJSON(w, rec)
	case formatLine:
		e := codec.NewLineEncoderWithDelimiter(delim)
		rec.Encode(e)
		_, err := fmt.Fprintln(w, e.String())
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
