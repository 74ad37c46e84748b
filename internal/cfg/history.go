package cfg

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"mdload/internal/models"
	"mdload/internal/repo"

	"github.com/dustin/go-humanize"
)

// listHistory prints the most recent download records.
func listHistory(ctx context.Context, w io.Writer, limit int) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := repo.NewHistoryStore(db.DB).Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No downloads recorded yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tSTATUS\tKIND\tSIZE\tTITLE\tDETAIL")
	for _, rec := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID,
			humanize.Time(rec.CreatedAt),
			rec.Status,
			orDash(rec.Kind),
			sizeOf(rec),
			orDash(rec.Title),
			detailOf(rec),
		)
	}
	return tw.Flush()
}

func sizeOf(rec *models.HistoryRecord) string {
	if rec.FileSize <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(rec.FileSize))
}

func detailOf(rec *models.HistoryRecord) string {
	if rec.Status == models.StatusFailed {
		return rec.Error
	}
	return orDash(rec.FilePath)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
