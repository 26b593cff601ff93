package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/passgen"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/fatih/color"
)

const masked = "********"

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}

func notice(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, color.CyanString("→")+" "+fmt.Sprintf(format, args...))
}

func printItems(w io.Writer, items []models.DecryptedItem) {
	if len(items) == 0 {
		notice(w, "vault is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tURL\tUPDATED")
	for _, it := range items {
		if it.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t\t\t%s\n", it.ID, color.RedString("✗ cannot decrypt"), formatTime(it.UpdatedAt))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Record.Title, it.Record.Username, it.Record.URL, formatTime(it.UpdatedAt))
	}
	_ = tw.Flush()
}

func printItem(w io.Writer, it models.DecryptedItem, reveal bool) {
	password := masked
	if reveal {
		password = it.Record.Password
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range [][2]string{
		{"ID", it.ID},
		{"Title", it.Record.Title},
		{"Username", it.Record.Username},
		{"Password", password},
		{"URL", it.Record.URL},
		{"Created", formatTime(it.CreatedAt)},
		{"Updated", formatTime(it.UpdatedAt)},
	} {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	_ = tw.Flush()

	if it.Record.Notes != "" {
		fmt.Fprintln(w, "Notes:")
		for line := range strings.SplitSeq(it.Record.Notes, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

func printStrength(w io.Writer, r passgen.Result) {
	paint := color.RedString
	switch r.Label() {
	case "strong":
		paint = color.GreenString
	case "medium":
		paint = color.YellowString
	}
	fmt.Fprintf(w, "Strength: %s (%d/100)\n", paint(r.Label()), r.Score)
	fmt.Fprintln(w, r.Feedback)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}
