// Package inspect checks an external demo module against a dispatch table
// without running it.
//
// # Overview
//
// The demo entry points live in a separately built WebAssembly module. The
// page dispatcher trusts that module to export one no-argument function per
// table row; a missing or renamed export only shows up as a browser error.
// The [Inspector] compiles the module with wazero, never instantiating it,
// and reports which rows resolve.
//
// # Basic Usage
//
//	in, err := inspect.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer in.Close()
//
//	report, err := in.Inspect(ctx, wasm, dispatch.DefaultTable())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range report.Missing() {
//	    fmt.Println("missing", e.Demo.Entry)
//	}
//
// # Caching
//
// Compiled modules are kept in memory keyed by content hash. [WithDiskCache]
// additionally persists wazero's compilation cache so repeated CLI runs skip
// compilation.
package inspect
