package render

import (
	"strings"

	"github.com/rivo/uniseg"
)

const ellipsis = "…"

var controlEscaper = strings.NewReplacer("\r\n", `\r\n`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// displayCell makes a field printable on one line and cuts it to at most
// width terminal columns, keeping whole grapheme clusters. width <= 0
// disables truncation.
func displayCell(field string, width int) string {
	s := controlEscaper.Replace(field)
	if width <= 0 || uniseg.StringWidth(s) <= width {
		return s
	}
	return truncate(s, width)
}

func truncate(s string, width int) string {
	limit := width - uniseg.StringWidth(ellipsis)
	if limit < 0 {
		limit = 0
	}

	var b strings.Builder
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > limit {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(ellipsis)
	return b.String()
}
