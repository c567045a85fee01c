package extract

import (
	"log/slog"
	"time"
)

// dateLayouts are tried in fixed priority order; the first full-date parse
// wins. Forms are hand-filled, so all four separators show up in practice.
// Non-padded verbs accept one or two digits, so 2024年5月1日 and
// 2024年05月01日 both parse.
var dateLayouts = []string{
	"2006年1月2日",
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
}

// NormalizeDate re-renders a free-form date string as YYYY-MM-DD. Input that
// matches none of the accepted layouts is logged and returned verbatim:
// export must never block on an unparseable date.
func NormalizeDate(dateStr string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.Format("2006-01-02")
		}
	}
	logger.Warn("extract.date.unparseable", "date", dateStr)
	return dateStr
}
