package census

import (
	"io"
	"sort"
	"strconv"
	"time"

	coinmath "github.com/drakos74/free-census/internal/math"
	"github.com/olekukonko/tablewriter"
)

// Report summarises a conversion run.
type Report struct {
	ID       string            `json:"id"`
	Variant  Variant           `json:"variant"`
	Target   string            `json:"target"`
	Lines    int               `json:"lines"`
	Accepted int               `json:"accepted"`
	Rejected int               `json:"rejected"`
	Retained int               `json:"retained"`
	Outputs  []string          `json:"outputs"`
	Columns  []coinmath.Column `json:"columns"`
	Classes  map[string]int    `json:"classes"`
	Elapsed  time.Duration     `json:"elapsed"`
}

// Render prints the report as tables.
func (r Report) Render(w io.Writer) {
	counts := tablewriter.NewWriter(w)
	counts.SetHeader([]string{"run", "variant", "lines", "accepted", "rejected", "retained"})
	counts.Append([]string{
		r.ID,
		string(r.Variant),
		strconv.Itoa(r.Lines),
		strconv.Itoa(r.Accepted),
		strconv.Itoa(r.Rejected),
		strconv.Itoa(r.Retained),
	})
	counts.Render()

	if len(r.Columns) > 0 {
		columns := tablewriter.NewWriter(w)
		columns.SetHeader([]string{"column", "mean", "std", "min", "max"})
		for _, c := range r.Columns {
			columns.Append([]string{
				c.Name,
				coinmath.Format(c.Mean),
				coinmath.Format(c.StdDev),
				coinmath.Format(c.Min),
				coinmath.Format(c.Max),
			})
		}
		columns.Render()
	}

	if len(r.Classes) > 0 {
		names := make([]string, 0, len(r.Classes))
		for name := range r.Classes {
			names = append(names, name)
		}
		sort.Strings(names)
		classes := tablewriter.NewWriter(w)
		classes.SetHeader([]string{r.Target, "rows"})
		for _, name := range names {
			classes.Append([]string{name, strconv.Itoa(r.Classes[name])})
		}
		classes.Render()
	}
}
