package export

import (
	"os"
	"os/exec"
	"time"
)

// Chrome falls back to PNG for a screenshot quality of 100.
const maxJPEGQuality = 99

// Options configures the Chrome exporter.
type Options struct {
	// ChromePath overrides the Chrome binary. Empty means let chromedp find one.
	ChromePath  string
	PageSize    PageSize
	JPEGQuality int
	Timeout     time.Duration
	Verbose     bool
}

// DefaultOptions returns default export options. CHROME_PATH is honored when set.
func DefaultOptions() *Options {
	return &Options{
		ChromePath:  os.Getenv("CHROME_PATH"),
		PageSize:    PageA4,
		JPEGQuality: 90,
		Timeout:     60 * time.Second,
	}
}

func (o *Options) withDefaults() *Options {
	d := DefaultOptions()
	if o == nil {
		return d
	}
	out := *o
	if out.PageSize == "" {
		out.PageSize = d.PageSize
	}
	if out.JPEGQuality <= 0 {
		out.JPEGQuality = d.JPEGQuality
	}
	if out.JPEGQuality > maxJPEGQuality {
		out.JPEGQuality = maxJPEGQuality
	}
	if out.Timeout <= 0 {
		out.Timeout = d.Timeout
	}
	return &out
}

var chromeNames = []string{
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
}

// BrowserAvailable reports whether a Chrome binary can be found for the options.
func BrowserAvailable(opts *Options) bool {
	opts = opts.withDefaults()
	if opts.ChromePath != "" {
		_, err := os.Stat(opts.ChromePath)
		return err == nil
	}
	for _, name := range chromeNames {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
