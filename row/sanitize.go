package row

import "github.com/microcosm-cc/bluemonday"

// SanitizeString returns a RowFunc, suitable for CustomStage, that strips
// HTML markup from the named string columns with bluemonday's strict
// policy. Columns not present in a row, or whose value isn't a string,
// pass through untouched. NFC normalization of the result happens later,
// uniformly, when the column is built (batch.NewStringColumn).
func SanitizeString(columns ...string) RowFunc {
	policy := bluemonday.StrictPolicy()
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}

	return func(r Row) (Row, bool) {
		out := make(Row, len(r))
		for k, v := range r {
			if set[k] {
				if s, ok := v.(string); ok {
					out[k] = policy.Sanitize(s)
					continue
				}
			}
			out[k] = v
		}
		return out, true
	}
}
