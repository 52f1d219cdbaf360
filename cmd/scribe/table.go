package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"scribe/internal/views"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableStyle picks rounded box drawing for terminals and plain ASCII for
// pipes and files.
func tableStyle(w io.Writer) table.Style {
	if isTerminal(w) {
		return table.StyleRounded
	}
	return table.StyleDefault
}

func renderTable(w io.Writer, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(tableStyle(w))

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderFieldTable renders label/value rows without a header.
func renderFieldTable(w io.Writer, rows []views.Row) string {
	tw := table.NewWriter()
	tw.SetStyle(tableStyle(w))
	for _, row := range rows {
		tw.AppendRow(table.Row{row.Label, row.Value})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, WidthMax: 72},
	})
	return tw.Render()
}

func rowsToCells(rows []views.Row) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{row.Label, row.Value})
	}
	return cells
}
