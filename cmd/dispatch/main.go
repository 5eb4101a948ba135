//go:build js && wasm

// Command dispatch is the page-load dispatcher compiled to WebAssembly.
// It starts the demo named by the query string, or reveals the links.
//
// Build with: GOOS=js GOARCH=wasm go build -o web/static/dispatch.wasm ./cmd/dispatch
package main

import (
	"log"

	"github.com/caffeineduck/demoshell/dispatch"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("[DISPATCH] ")

	cfg, err := dispatch.LoadPageConfig(dispatch.DefaultPageConfigID)
	if err != nil {
		log.Printf("%v, using defaults", err)
		cfg = dispatch.DefaultPageConfig()
	}

	page, err := dispatch.DOMPage(cfg.CanvasID, cfg.LinksID)
	if err != nil {
		log.Fatal(err)
	}

	d := dispatch.New(page, dispatch.GlobalEntryPoints(cfg.Namespace),
		dispatch.WithTable(cfg.Demos),
		dispatch.WithLogger(log.Default()),
	)
	// Run logs the outcome itself.
	d.Run(dispatch.Location())
}
