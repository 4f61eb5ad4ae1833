package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const maxColumnWidth = 120

// TableSink collects rows into a box-drawn table and writes it on Flush.
type TableSink struct {
	out     io.Writer
	t       table.Writer
	columns int
	day     *color.Color
}

// NewTableSink returns a sink writing to out. colored controls whether day
// rows are highlighted.
func NewTableSink(out io.Writer, colored bool) *TableSink {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = true

	day := color.New(color.FgCyan, color.Bold)
	if !colored {
		day.DisableColor()
	}
	return &TableSink{out: out, t: t, day: day}
}

func (s *TableSink) Header(cells ...string) {
	s.columns = len(cells)
	configs := make([]table.ColumnConfig, len(cells))
	for i := range cells {
		configs[i] = table.ColumnConfig{Number: i + 1, WidthMax: maxColumnWidth}
	}
	s.t.SetColumnConfigs(configs)
	s.t.AppendRow(row(cells))
}

func (s *TableSink) Day(label string) {
	label = s.day.Sprint(label)
	cells := make(table.Row, s.columns)
	for i := range cells {
		cells[i] = label
	}
	s.t.AppendRow(cells, table.RowConfig{AutoMerge: true, AutoMergeAlign: text.AlignCenter})
}

func (s *TableSink) Row(cells ...string) {
	s.t.AppendRow(row(cells))
}

// Flush renders everything appended so far.
func (s *TableSink) Flush() error {
	_, err := fmt.Fprintln(s.out, s.t.Render())
	return err
}

func row(cells []string) table.Row {
	r := make(table.Row, len(cells))
	for i, c := range cells {
		r[i] = c
	}
	return r
}
