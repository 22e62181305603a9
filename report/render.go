package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
)

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("report: unknown format %q", s)
	}
}

// Write renders r in format f.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatText, "":
		return r.WriteText(w)
	default:
		return fmt.Errorf("report: unknown format %q", f)
	}
}

// WriteJSON renders r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText renders r as a sequence of titled tables.
func (r *Report) WriteText(w io.Writer) error {
	tw := &textWriter{w: w}

	tw.printf("Filter: %s\n", r.Filter)
	tw.printf("Rows: %d of %d selected\n", r.SelectedRows, r.TotalRows)
	for _, warn := range r.Warnings {
		tw.printf("Warning: %s\n", warn)
	}

	for _, q := range r.Quality {
		tw.title(fmt.Sprintf("Data quality (%s)", q.Table))
		tw.printf("Rows: %d  Duplicates: %d  Dropped incomplete: %d\n", q.Rows, q.Duplicates, q.Dropped)
		cols := make([]string, 0, len(q.Missing))
		for c := range q.Missing {
			cols = append(cols, c)
		}
		slices.Sort(cols)
		rows := make([][]string, 0, len(cols))
		for _, c := range cols {
			rows = append(rows, []string{c, strconv.Itoa(q.Missing[c])})
		}
		tw.table([]string{"Column", "Missing"}, rows)
	}

	if r.Overall != nil {
		tw.title("Descriptive statistics (all rows)")
		tw.summaries(r.Overall)
	}
	if r.Selected != nil {
		tw.title("Descriptive statistics (selected rows)")
		tw.summaries(r.Selected)
	}

	if h := r.Histogram; h != nil {
		tw.title(fmt.Sprintf("Distribution of %s", h.Column))
		rows := make([][]string, len(h.Counts))
		for i, c := range h.Counts {
			row := []string{h.Edges[i].String() + " - " + h.Edges[i+1].String(), strconv.Itoa(c)}
			if h.Density != nil {
				row = append(row, h.Density[i].String())
			}
			rows[i] = row
		}
		header := []string{"Bin", "Count"}
		if h.Density != nil {
			header = append(header, "Density")
		}
		tw.table(header, rows)
	}

	if r.BySeason != nil {
		tw.title("Mean rentals per season")
		tw.groups("Season", r.BySeason, false)
	}
	if r.ByWeather != nil {
		tw.title("Mean rentals per weather situation")
		tw.groups("Weather", r.ByWeather, false)
	}

	if c := r.Correlation; c != nil {
		tw.title("Correlation")
		rows := make([][]string, len(c.Columns))
		for i, name := range c.Columns {
			row := []string{name}
			for _, v := range c.Values[i] {
				row = append(row, fmt.Sprintf("%.2f", float64(v)))
			}
			rows[i] = row
		}
		tw.table(append([]string{""}, c.Columns...), rows)
	}

	if f := r.Fit; f != nil {
		tw.title(fmt.Sprintf("Linear fit %s ~ %s", f.Y, f.X))
		tw.table([]string{"N", "Alpha", "Beta", "R²"},
			[][]string{{strconv.Itoa(f.N), f.Alpha.String(), f.Beta.String(), f.RSquared.String()}})
	}

	if c := r.Clustering; c != nil {
		tw.title(fmt.Sprintf("K-means clusters (%s vs %s, k=%d)", c.X, c.Y, c.K))
		tw.printf("Iterations: %d  Converged: %t  Empty cluster events: %d\n", c.Iterations, c.Converged, c.EmptyClusters)
		rows := make([][]string, len(c.Clusters))
		for i, cl := range c.Clusters {
			rows[i] = []string{strconv.Itoa(cl.Index), cl.Centroid.X.String(), cl.Centroid.Y.String(), strconv.Itoa(cl.Size)}
		}
		tw.table([]string{"Cluster", c.X, c.Y, "Size"}, rows)
	}

	if r.Hourly != nil {
		tw.title("Total rentals per hour")
		tw.groups("Hour", r.Hourly, true)
	}

	return tw.err
}

// textWriter remembers the first write error.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *textWriter) title(s string) {
	t.printf("\n%s\n%s\n", s, strings.Repeat("=", len([]rune(s))))
}

func (t *textWriter) table(header []string, rows [][]string) {
	if t.err != nil {
		return
	}
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(rows)
	table.Render()
	t.printf("%s", sb.String())
}

func (t *textWriter) summaries(in []Summary) {
	rows := make([][]string, len(in))
	for i, s := range in {
		rows[i] = []string{
			s.Column, strconv.Itoa(s.Count), s.Mean.String(), s.Std.String(),
			s.Min.String(), s.Q25.String(), s.Q50.String(), s.Q75.String(), s.Max.String(),
		}
	}
	t.table([]string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}, rows)
}

func (t *textWriter) groups(key string, in []Group, sum bool) {
	rows := make([][]string, len(in))
	for i, g := range in {
		k := strconv.Itoa(g.Key)
		if g.Label != "" {
			k += " (" + g.Label + ")"
		}
		v := g.Mean
		if sum {
			v = g.Sum
		}
		rows[i] = []string{k, strconv.Itoa(g.Count), v.String()}
	}
	agg := "Mean"
	if sum {
		agg = "Sum"
	}
	t.table([]string{key, "Rows", agg}, rows)
}
