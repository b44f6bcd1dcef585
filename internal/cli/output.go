package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"memory_mapping/internal/model"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeMemories(w io.Writer, format string, list []model.Memory) error {
	if format == "json" {
		return writeJSON(w, list)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tMEMORY ID\tDESCRIPTION\tPRICE\tOWNER")
	for _, m := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", m.Sequence, m.MemoryID, m.Description, m.Price, m.Owner)
	}
	return tw.Flush()
}

func writeCount(w io.Writer, format string, count int64) error {
	if format == "json" {
		return writeJSON(w, map[string]int64{"count": count})
	}
	_, err := fmt.Fprintln(w, count)
	return err
}
