package export

import (
	"context"
	"log"

	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// GalleryConcurrency bounds the number of browser tabs used by ExportGallery.
const GalleryConcurrency = 4

// GalleryItem is one template's export in a gallery run.
type GalleryItem struct {
	Template string
	Format   Format
	Data     []byte
}

// ExportGallery renders content with every known template and exports each result.
// Browser formats share one Chrome instance with a bounded number of tabs.
// Items are returned in catalog order.
func (e *ChromeExporter) ExportGallery(ctx context.Context, content *types.Content, format Format) ([]GalleryItem, error) {
	ids := rendering.IDs()
	items := make([]GalleryItem, len(ids))

	docs := make([]*rendering.Document, len(ids))
	for i, id := range ids {
		doc, err := rendering.Render(id, content)
		if err != nil {
			return nil, &Error{Format: format, Message: "failed to render " + id, Cause: err}
		}
		docs[i] = doc
	}

	if !format.NeedsBrowser() {
		for i, doc := range docs {
			data, err := exportStatic(doc, format)
			if err != nil {
				return nil, err
			}
			items[i] = GalleryItem{Template: doc.Template, Format: format, Data: data}
		}
		return items, nil
	}

	browserCtx, cancel := e.newBrowser(ctx)
	defer cancel()

	// Start the browser before opening tabs concurrently
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, &Error{Format: format, Message: "failed to start browser", Cause: err}
	}

	g, gctx := errgroup.WithContext(browserCtx)
	g.SetLimit(GalleryConcurrency)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := e.exportInTab(gctx, doc, format)
			if err != nil {
				return err
			}
			items[i] = GalleryItem{Template: doc.Template, Format: format, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if e.opts.Verbose {
		log.Printf("[export] Gallery exported %d templates as %s", len(items), format)
	}
	return items, nil
}
