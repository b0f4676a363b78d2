package export

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// Exporter converts a rendered document to a file in the given format.
type Exporter interface {
	Export(ctx context.Context, doc *rendering.Document, format Format) ([]byte, error)
}

// ChromeExporter exports documents with headless Chrome driven by chromedp.
type ChromeExporter struct {
	opts *Options
}

// NewChromeExporter creates an exporter. Nil options use DefaultOptions.
func NewChromeExporter(opts *Options) *ChromeExporter {
	return &ChromeExporter{opts: opts.withDefaults()}
}

// Export converts doc to the requested format. A browser is started only for PDF and JPG.
func (e *ChromeExporter) Export(ctx context.Context, doc *rendering.Document, format Format) ([]byte, error) {
	if doc == nil {
		return nil, &Error{Format: format, Message: "no document to export"}
	}
	if !format.NeedsBrowser() {
		return exportStatic(doc, format)
	}

	browserCtx, cancel := e.newBrowser(ctx)
	defer cancel()

	return e.exportInTab(browserCtx, doc, format)
}

func exportStatic(doc *rendering.Document, format Format) ([]byte, error) {
	switch format {
	case FormatHTML:
		return []byte(doc.HTML), nil
	case FormatText:
		text, err := rendering.PlainText(doc.HTML)
		if err != nil {
			return nil, &Error{Format: format, Message: "failed to extract text", Cause: err}
		}
		return []byte(text + "\n"), nil
	}
	return nil, &Error{Format: format, Message: "unsupported format"}
}

// newBrowser starts a Chrome allocator and returns a browser context.
// The returned cancel function shuts the browser down.
func (e *ChromeExporter) newBrowser(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.opts.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	return browserCtx, func() {
		cancelBrowser()
		cancelAlloc()
	}
}

// exportInTab opens a new tab in an existing browser, loads the document and captures it.
func (e *ChromeExporter) exportInTab(browserCtx context.Context, doc *rendering.Document, format Format) ([]byte, error) {
	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	tabCtx, cancel := context.WithTimeout(tabCtx, e.opts.Timeout)
	defer cancel()

	if e.opts.Verbose {
		log.Printf("[export] Rendering %s with template %s", format, doc.Template)
	}

	width, height := e.opts.PageSize.Viewport()
	var out []byte
	actions := []chromedp.Action{
		chromedp.EmulateViewport(width, height),
		chromedp.Navigate("about:blank"),
		setDocument(doc.HTML),
		chromedp.WaitReady("main", chromedp.ByQuery),
	}

	switch format {
	case FormatPDF:
		paperWidth, paperHeight := e.opts.PageSize.Inches()
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}))
	case FormatJPG:
		actions = append(actions, chromedp.FullScreenshot(&out, e.opts.JPEGQuality))
	default:
		return nil, &Error{Format: format, Message: "unsupported format"}
	}

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return nil, &Error{Format: format, Message: "browser export failed", Cause: err}
	}

	if format == FormatPDF {
		e.checkPages(doc.Template, out)
	}
	if e.opts.Verbose {
		log.Printf("[export] Produced %d bytes of %s", len(out), format)
	}
	return out, nil
}

// setDocument replaces the current frame's document with html.
func setDocument(html string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
	})
}

// checkPages logs the warnings pdfWarnings finds in an exported PDF.
func (e *ChromeExporter) checkPages(template string, pdf []byte) {
	for _, w := range pdfWarnings(template, pdf) {
		log.Printf("[export] Warning: %s", w)
	}
}

// pdfWarnings reports résumés that spill onto more than one page or lose
// their text layer, which makes them unreadable to applicant tracking systems.
func pdfWarnings(template string, pdf []byte) []string {
	pages, err := PageCount(pdf)
	if err != nil {
		return []string{fmt.Sprintf("could not inspect PDF for %s: %v", template, err)}
	}

	var warnings []string
	if pages > 1 {
		warnings = append(warnings, fmt.Sprintf("%s résumé is %d pages long", template, pages))
	}
	text, err := PDFText(pdf)
	switch {
	case err != nil:
		warnings = append(warnings, fmt.Sprintf("could not read text of %s PDF: %v", template, err))
	case strings.TrimSpace(text) == "":
		warnings = append(warnings, fmt.Sprintf("%s PDF has no text layer", template))
	}
	return warnings
}
