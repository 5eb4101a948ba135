// Package dispatch picks which external demo to run on page load.
//
// # Overview
//
// A page hosts two regions: a canvas that every demo renders into and a
// links panel offered when no demo was requested. The [Dispatcher] reads the
// URL query string once, walks an ordered [Table] of recognized flags and, on
// the first match, shows the canvas, sizes it to the viewport, hides the
// links and calls the matching entry point of the external demo module.
// When nothing matches the canvas stays hidden and the links are shown.
//
// # Basic Usage
//
//	d := dispatch.New(page, entries)
//	demo, ok := d.Run(location)
//
// # Dispatch Table
//
// The table is data. Order is priority and the first flag present wins:
//
//	table := dispatch.DefaultTable().Append(dispatch.Demo{
//	    Flag:  "voxels",
//	    Entry: "voxels",
//	    Title: "Voxels",
//	})
//	d := dispatch.New(page, entries, dispatch.WithTable(table))
//
// # Browser Bindings
//
// Under GOOS=js the package also provides [DOMPage], [GlobalEntryPoints],
// [LoadPageConfig] and [Location], which bind the dispatcher to the live
// document. Other platforms use the interfaces directly, which is how the
// tests drive it.
package dispatch
