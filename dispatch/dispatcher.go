package dispatch

import (
	"io"
	"log"
)

// CSS display values written to the two regions.
const (
	DisplayNone  = "none"
	DisplayBlock = "block"
)

// Element is a page region whose visibility and pixel size can be set.
type Element interface {
	SetDisplay(value string)
	SetSize(width, height int)
}

// Page exposes the two regions the dispatcher drives and the viewport size.
type Page interface {
	Canvas() Element
	Links() Element
	Viewport() (width, height int)
}

// EntryPoints calls a no-argument entry point of the external demo module.
// Failures inside the entry point are not reported back; under GOOS=js a
// thrown exception surfaces as a panic.
type EntryPoints interface {
	Call(entry string)
}

// EntryFunc adapts a function to EntryPoints.
type EntryFunc func(entry string)

func (f EntryFunc) Call(entry string) { f(entry) }

// Dispatcher runs at most one demo per page load.
type Dispatcher struct {
	page    Page
	entries EntryPoints
	table   Table
	logger  *log.Logger
}

// New creates a Dispatcher over page and entries using DefaultTable unless
// WithTable says otherwise.
func New(page Page, entries EntryPoints, opts ...Option) *Dispatcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Dispatcher{
		page:    page,
		entries: entries,
		table:   cfg.table,
		logger:  logger,
	}
}

// Run inspects query and performs the page effects. It returns the demo
// that was started, if any.
func (d *Dispatcher) Run(query string) (Demo, bool) {
	canvas := d.page.Canvas()
	links := d.page.Links()

	canvas.SetDisplay(DisplayNone)

	demo, ok := Select(d.table, query)
	if !ok {
		links.SetDisplay(DisplayBlock)
		d.logger.Printf("no demo requested in %q, showing links", query)
		return Demo{}, false
	}

	width, height := d.page.Viewport()
	canvas.SetSize(width, height)
	canvas.SetDisplay(DisplayBlock)
	links.SetDisplay(DisplayNone)

	d.logger.Printf("starting %s (%s) at %dx%d", demo.Flag, demo.Entry, width, height)
	d.entries.Call(demo.Entry)
	return demo, true
}
