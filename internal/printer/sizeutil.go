package printer

import (
	"github.com/dustin/go-humanize"
)

// FormatBytes returns a binary prefixed size (e.g "512 B", "1.5 KiB", "700 MiB").
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
