package render

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
)

// FormatNumber abbreviates large magnitudes with K/M/B suffixes.
func FormatNumber(num float64) string {
	abs := math.Abs(num)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", num/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", num/1e6)
	case abs >= 1e4:
		return fmt.Sprintf("%.1fK", num/1e3)
	case abs == 0:
		return "0"
	}
	return strconv.FormatFloat(num, 'g', 4, 64)
}

// numberTicks labels the default tick positions with FormatNumber.
type numberTicks struct{}

func (numberTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = FormatNumber(ticks[i].Value)
		}
	}
	return ticks
}

// SanitizeColumn makes a column name safe for use as a file name.
func SanitizeColumn(column string) string {
	return strings.NewReplacer("/", "-", `\`, "-", " ", "_").Replace(column)
}

// OutputPath returns the PDF path for a column, suffixed with the year
// when hasYear is set.
func OutputPath(dir, column string, year int, hasYear bool) string {
	name := SanitizeColumn(column)
	if hasYear {
		name = fmt.Sprintf("%s_%d", name, year)
	}
	return filepath.Join(dir, name+".pdf")
}

// Label is the colorbar caption for a column and optional year.
func Label(column string, year int, hasYear bool) string {
	if hasYear {
		return fmt.Sprintf("%s, year: %d", column, year)
	}
	return column
}
