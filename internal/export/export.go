// Package export renders the task list into shareable formats.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/jung-kurt/gofpdf"
)

// ErrUnknownFormat is returned for formats Export does not produce.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the accepted format names.
var Formats = []string{"json", "md", "html", "pdf"}

// Export renders tasks in the named format.
func Export(tasks []string, format string) ([]byte, error) {
	if tasks == nil {
		tasks = []string{}
	}
	switch strings.ToLower(format) {
	case "json":
		return JSON(tasks)
	case "md", "markdown":
		return Markdown(tasks), nil
	case "html":
		return HTML(tasks), nil
	case "pdf":
		return PDF(tasks)
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}

// JSON renders an indented array. HTML characters are written as is.
func JSON(tasks []string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Markdown renders a checklist. Task text is escaped so it shows literally.
func Markdown(tasks []string) []byte {
	var b bytes.Buffer
	b.WriteString("# Tasks\n\n")
	if len(tasks) == 0 {
		b.WriteString("_No tasks._\n")
		return b.Bytes()
	}
	for _, t := range tasks {
		fmt.Fprintf(&b, "- [ ] %s\n", escapeMarkdown(t))
	}
	return b.Bytes()
}

// HTML renders the Markdown checklist as a standalone HTML page.
func HTML(tasks []string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{
		Title: "Tasks",
		Flags: html.CommonFlags | html.CompletePage | html.HrefTargetBlank,
	})
	return markdown.ToHTML(Markdown(tasks), p, r)
}

// PDF renders one task per line on A4 pages. It uses the core Arial font,
// so text is limited to cp1252; other characters print as '?'.
func PDF(tasks []string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(14)
	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.Cell(40, 8, "No tasks.")
	}
	for i, t := range tasks {
		pdf.MultiCell(0, 7, fmt.Sprintf("%d. %s", i+1, tr(t)), "0", "L", false)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

var mdSpecial = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`,
)

func escapeMarkdown(s string) string { return mdSpecial.Replace(s) }
