package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/process"
)

// Sentinel errors for PDF printing.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// DefaultTimeout bounds page loading when the context has no deadline.
const DefaultTimeout = 30 * time.Second

// cssPixelsPerInch converts slide pixels to paper inches.
const cssPixelsPerInch = 96.0

// PageSize is the printed size of one slide, in CSS pixels.
type PageSize struct {
	Width  int
	Height int
}

// pageRenderer prints a local HTML file. Tests replace the browser with a
// fake implementation.
type pageRenderer interface {
	RenderFromFile(ctx context.Context, path string, size PageSize) ([]byte, error)
	Close() error
}

var _ pageRenderer = (*rodRenderer)(nil)

// rodRenderer prints with headless Chrome through go-rod. The browser is
// launched on first use and reused until Close.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher, r.browser = l, browser
	return nil
}

// Close shuts the browser down and kills any leftover Chrome processes.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	process.KillTree(r.launcher.PID())
	r.launcher.Kill()
	r.browser, r.launcher = nil, nil
	return err
}

// RenderFromFile opens path in a new tab and prints it with every slide on
// its own page of the given size and no margins.
func (r *rodRenderer) RenderFromFile(ctx context.Context, path string, size PageSize) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zero := 0.0
	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:        floatPtr(float64(size.Width) / cssPixelsPerInch),
		PaperHeight:       floatPtr(float64(size.Height) / cssPixelsPerInch),
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

func floatPtr(v float64) *float64 {
	return &v
}

// PDFPrinter writes preview pages to PDF.
type PDFPrinter struct {
	renderer pageRenderer
}

// NewPDFPrinter returns a printer backed by headless Chrome. A zero
// timeout uses DefaultTimeout.
func NewPDFPrinter(timeout time.Duration) *PDFPrinter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PDFPrinter{renderer: &rodRenderer{timeout: timeout}}
}

// ToPDF prints htmlContent. Zero sizes fall back to the default slide
// size.
func (p *PDFPrinter) ToPDF(ctx context.Context, htmlContent string, size PageSize) ([]byte, error) {
	size.Width = firstPositive(size.Width, DefaultWidth)
	size.Height = firstPositive(size.Height, DefaultHeight)

	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return p.renderer.RenderFromFile(ctx, path, size)
}

// Close releases the browser.
func (p *PDFPrinter) Close() error {
	return p.renderer.Close()
}
