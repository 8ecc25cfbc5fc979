package exporter

import (
	"strings"

	"cellgrep/internal/exporter/word"
)

// GetExporters returns a list of Exporters based on requested formats.
// Unknown format names are ignored; "none" yields an empty list.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "excel", "xlsx":
			exporters = append(exporters, NewExcelExporter())
		case "word", "docx":
			exporters = append(exporters, word.NewWordExporter())
		}
	}

	return exporters
}
