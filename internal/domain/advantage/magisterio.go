package advantage

import (
	"fmt"
	"strconv"
	"strings"

	"folha/internal/normalize"
)

// BuildMagisterio sums positive reference hours per registration across all
// lookup-kind sources. Non-numeric and non-positive values are ignored; a
// source that cannot be read is logged and skipped and never blocks the main
// run.
func (e *Engine) BuildMagisterio(sources []Source) MagisterioHours {
	hours := make(MagisterioHours)
	for _, src := range filterSources(sources, KindMagisterio) {
		e.log(fmt.Sprintf("reading magisterio lookup source %q", src.Label()))
		t, err := readInput(src.Path)
		if err != nil {
			e.log(fmt.Sprintf("warning: could not read magisterio source %q: %v; skipping", src.Label(), err))
			continue
		}
		for i := range t.Rows {
			registration := normalize.Clean(t.Cell(i, ColRegistration))
			if registration == "" {
				continue
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(t.Cell(i, ColReference)), 64)
			if err != nil {
				continue
			}
			if add := int64(f); add > 0 {
				hours[registration] += add
			}
		}
	}
	return hours
}
