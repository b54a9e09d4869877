// Package output renders distribution reports for the terminal.
package output

import (
	"fmt"
	"io"
	"strconv"

	"readwise-notifier/internal/service"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// ReportPrinter writes an analyze-mode report as a table.
type ReportPrinter struct {
	out       io.Writer
	useColors bool
}

// NewReportPrinter creates a printer. Colors follow the NO_COLOR convention
// through the color package's global state, so useColors is only an explicit
// override for tests.
func NewReportPrinter(out io.Writer, useColors bool) *ReportPrinter {
	return &ReportPrinter{out: out, useColors: useColors}
}

// Print renders the per-year distribution table followed by the summary line.
func (p *ReportPrinter) Print(report service.DistributionReport) {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(report.YearCounts)+1)
	for _, year := range report.Years() {
		rows = append(rows, []string{strconv.Itoa(year), strconv.Itoa(report.YearCounts[year])})
	}
	if report.NoDate > 0 {
		rows = append(rows, []string{"no date", strconv.Itoa(report.NoDate)})
	}

	table.Header([]string{"Year", "Highlights"})
	table.Bulk(rows)
	table.Render()

	summary := fmt.Sprintf("total %d | recent (<=730d) %d | old %d | undated %d",
		report.Total, report.Recent, report.Old, report.NoDate)
	if p.useColors {
		summary = color.New(color.Bold).Sprint(summary)
	}
	fmt.Fprintln(p.out, summary)
}
