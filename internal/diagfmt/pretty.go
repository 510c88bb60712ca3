package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sift/internal/diag"
	"sift/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Bold)
	noteColor    = color.New(color.FgBlue)
	markerColor  = color.New(color.FgGreen, color.Bold)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, end := fs.Resolve(d.Primary)
	path := formatPath(fs, d.Primary.File, opts.PathMode)

	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = codeColor.Sprint(code)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, d.Message)

	if opts.ShowSource {
		writeSourceLine(w, fs, d.Primary, start, end, opts)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			label := "note"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n",
				label, formatPath(fs, n.Span.File, opts.PathMode), nStart.Line, nStart.Col, n.Msg)
		}
		for _, fx := range d.Fixes {
			label := "fix"
			if opts.Color {
				label = noteColor.Sprint(label)
			}
			fmt.Fprintf(w, "  %s: %s%s\n", label, fx.Title, fixPreview(fx))
		}
	}
}

// fixPreview показывает текст замены для одношаговых правок.
func fixPreview(fx diag.Fix) string {
	if len(fx.Edits) != 1 || fx.Edits[0].NewText == "" {
		return ""
	}
	return fmt.Sprintf(": `%s`", fx.Edits[0].NewText)
}

// writeSourceLine печатает строку исходника и подчёркивание ^~~~ под Span.
// Ширина считается в экранных колонках, не в байтах, иначе подчёркивание
// уезжает на табуляциях и широких рунах.
func writeSourceLine(w io.Writer, fs *source.FileSet, span source.Span, start, end source.LineCol, opts PrettyOpts) {
	f := fs.Get(span.File)
	lineText := f.GetLine(start.Line)
	if lineText == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", lineText)

	startCol := int(start.Col) - 1
	if startCol > len(lineText) {
		startCol = len(lineText)
	}
	pad := runewidth.StringWidth(lineText[:startCol])

	spanText := lineText[startCol:]
	if end.Line == start.Line {
		endCol := int(end.Col) - 1
		if endCol > len(lineText) {
			endCol = len(lineText)
		}
		spanText = lineText[startCol:endCol]
	}
	width := runewidth.StringWidth(spanText)
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = markerColor.Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), marker)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
