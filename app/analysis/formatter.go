package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var percentishRe = regexp.MustCompile(`(?i)(percentage|rate)`)

// FormatValue renders a computed statistic for display. Absent values render
// as "N/A"; statistics named like percentages get two decimals and a trailing
// "%"; the averages tuple is joined with commas.
func FormatValue(key string, value any) string {
	switch v := value.(type) {
	case nil:
		return "N/A"
	case Averages:
		parts := []string{
			formatNullable(v.GPA),
			formatNullable(v.GRE),
			formatNullable(v.GREVerbal),
			formatNullable(v.GREWriting),
		}
		return strings.Join(parts, ", ")
	case *float64:
		if v == nil {
			return "N/A"
		}
		return formatScalar(key, *v)
	case float64:
		return formatScalar(key, v)
	case int:
		return strconv.Itoa(v)
	case string:
		return v
	}

	return fmt.Sprint(value)
}

func formatScalar(key string, v float64) string {
	if percentishRe.MatchString(key) {
		return fmt.Sprintf("%.2f%%", v)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatNullable(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// FormatResults renders every statistic in the result map.
func FormatResults(results map[string]any) map[string]string {
	formatted := make(map[string]string, len(results))
	for key, value := range results {
		formatted[key] = FormatValue(key, value)
	}
	return formatted
}
