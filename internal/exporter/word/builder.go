package word

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"cellgrep/internal/config"
	"cellgrep/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

const timestampLayout = "2006-01-02 15:04:05"

// WordExporter writes a plain-text run summary into the embedded Word
// template. Regenerate template.docx with cmd/gentemplate if the placeholder
// set changes.
type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(summary *model.Summary, cfg *config.Config) error {
	// The docx library only reads from a path, so extract the embedded
	// template to a temp file first
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "cellgrep-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	doc.Replace("{{Date}}", summary.Started.Format("2006-01-02"), -1)
	doc.Replace("{{Folder}}", summary.FolderPath, -1)
	doc.Replace("{{TotalFiles}}", fmt.Sprintf("%d", summary.FilesProcessed), -1)
	doc.Replace("{{TotalMatches}}", fmt.Sprintf("%d", summary.TotalMatches()), -1)

	// The docx library handles the XML encoding of the injected text
	doc.Replace("{{Content}}", buildContent(summary), -1)

	outFile := strings.TrimSuffix(cfg.GetReportPath(), ".xlsx") + ".docx"
	if err := doc.WriteToFile(outFile); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}

	return nil
}

// buildContent renders the match and failure listings as plain text
func buildContent(summary *model.Summary) string {
	var sb strings.Builder

	sb.WriteString("MATCHES\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if len(summary.Matches) == 0 {
		sb.WriteString("No matches found.\n")
	}
	for _, m := range summary.Matches {
		sb.WriteString(fmt.Sprintf("%s  [%s]  File: %s, Sheet: %s\n",
			m.Timestamp.Format(timestampLayout), m.RuleName, m.FileName, m.SheetName))
		sb.WriteString(fmt.Sprintf("    Value 1: %s\n    Value 2: %s\n", m.Value1, m.Value2))
	}

	if len(summary.Failures) > 0 {
		sb.WriteString("\nERRORS\n")
		sb.WriteString(strings.Repeat("=", 80) + "\n")
		for _, rec := range summary.Failures {
			sb.WriteString(fmt.Sprintf("%s  %s\n", rec.Timestamp.Format(timestampLayout), rec.Message))
		}
	}

	return sb.String()
}
