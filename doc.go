// Package demoshell is the front end for a set of WebAssembly demos that
// live in a separately built module.
//
// # Overview
//
// A single page hosts every demo. On load, a small Go program compiled to
// WebAssembly reads the query string, and either starts the requested demo
// in the page's canvas or shows a list of links:
//
//	/?tracer       ray tracer
//	/?life         game of life
//	/?mendelbrot   Mandelbrot renderer
//	/?3d           3-D scene
//	/              links to all of the above
//
// When several flags are present the earliest in the dispatch table wins.
//
// # Layout
//
//	dispatch.Table       ordered flag -> entry point mapping
//	dispatch.Dispatcher  page-load decision and DOM effects
//	inspect.Inspector    checks the demo module exports every entry point
//	site.Server          serves the page, assets and /api/demos
//	cmd/demoshell        serve, inspect and demos commands
//	cmd/dispatch         the js/wasm dispatcher binary
//
// # Building
//
//	go generate ./site
//	go run ./cmd/demoshell serve
//
// See the [dispatch], [inspect], [site] and [config] packages for details.
package demoshell
