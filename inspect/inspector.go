package inspect

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/caffeineduck/demoshell/dispatch"
	"github.com/tetratelabs/wazero"
)

// Entry is the resolution of one table row against the module exports.
type Entry struct {
	Demo     dispatch.Demo
	Exported bool
	Params   int
	Results  int
}

// Callable reports whether the export can be called with no arguments.
// Results are allowed; wasm-bindgen entry points return an error slot.
func (e Entry) Callable() bool {
	return e.Exported && e.Params == 0
}

// Report describes a module relative to a dispatch table.
type Report struct {
	Entries []Entry
	Exports []string
	Imports []string
}

// Missing returns the rows whose entry point is not exported.
func (r Report) Missing() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if !e.Exported {
			out = append(out, e)
		}
	}
	return out
}

// Unusable returns exported rows that need arguments.
func (r Report) Unusable() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Exported && !e.Callable() {
			out = append(out, e)
		}
	}
	return out
}

// OK reports whether every row resolves to a callable export.
func (r Report) OK() bool {
	for _, e := range r.Entries {
		if !e.Callable() {
			return false
		}
	}
	return true
}

// Inspector compiles modules and caches the results.
type Inspector struct {
	runtime  wazero.Runtime
	cache    wazero.CompilationCache
	compiled map[[sha256.Size]byte]wazero.CompiledModule
	mu       sync.RWMutex
	closed   bool
}

// New creates an Inspector.
func New(opts ...Option) (*Inspector, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := context.Background()

	var cache wazero.CompilationCache
	if cfg.diskCache {
		cacheDir := cfg.cacheDir
		if cacheDir == "" {
			cacheDir = DefaultCacheDir()
		}
		var err error
		cache, err = wazero.NewCompilationCacheWithDir(cacheDir)
		if err != nil {
			return nil, fmt.Errorf("create disk cache: %w", err)
		}
	}

	rtConfig := wazero.NewRuntimeConfig()
	if cache != nil {
		rtConfig = rtConfig.WithCompilationCache(cache)
	}
	if cfg.memoryLimitPages > 0 {
		rtConfig = rtConfig.WithMemoryLimitPages(cfg.memoryLimitPages)
	}

	return &Inspector{
		runtime:  wazero.NewRuntimeWithConfig(ctx, rtConfig),
		cache:    cache,
		compiled: make(map[[sha256.Size]byte]wazero.CompiledModule),
	}, nil
}

// Inspect resolves every row of table against the exports of wasm.
func (in *Inspector) Inspect(ctx context.Context, wasm []byte, table dispatch.Table) (Report, error) {
	compiled, err := in.getCompiled(ctx, wasm)
	if err != nil {
		return Report{}, err
	}

	exports := compiled.ExportedFunctions()

	report := Report{
		Entries: make([]Entry, 0, len(table)),
		Exports: make([]string, 0, len(exports)),
	}
	for name := range exports {
		report.Exports = append(report.Exports, name)
	}
	sort.Strings(report.Exports)

	seen := make(map[string]bool)
	for _, def := range compiled.ImportedFunctions() {
		mod, _, _ := def.Import()
		if !seen[mod] {
			seen[mod] = true
			report.Imports = append(report.Imports, mod)
		}
	}
	sort.Strings(report.Imports)

	for _, demo := range table {
		entry := Entry{Demo: demo}
		if def, ok := exports[demo.Entry]; ok {
			entry.Exported = true
			entry.Params = len(def.ParamTypes())
			entry.Results = len(def.ResultTypes())
		}
		report.Entries = append(report.Entries, entry)
	}

	return report, nil
}

// InspectFile reads path and inspects it.
func (in *Inspector) InspectFile(ctx context.Context, path string, table dispatch.Table) (Report, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read module: %w", err)
	}
	return in.Inspect(ctx, wasm, table)
}

// getCompiled returns a cached compiled module, compiling if necessary.
func (in *Inspector) getCompiled(ctx context.Context, wasm []byte) (wazero.CompiledModule, error) {
	key := sha256.Sum256(wasm)

	in.mu.RLock()
	if compiled, ok := in.compiled[key]; ok {
		in.mu.RUnlock()
		return compiled, nil
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()

	if in.closed {
		return nil, ErrClosed
	}
	if compiled, ok := in.compiled[key]; ok {
		return compiled, nil
	}

	compiled, err := in.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("compile module: %w", err)
	}

	in.compiled[key] = compiled
	return compiled, nil
}

// Close releases all resources held by the Inspector.
func (in *Inspector) Close() error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.closed {
		return nil
	}
	in.closed = true

	ctx := context.Background()

	var errs []error
	if err := in.runtime.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if in.cache != nil {
		if err := in.cache.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// DefaultCacheDir is where WithDiskCache stores compiled modules when no
// directory is given.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "demoshell")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "demoshell")
	}
	return filepath.Join(os.TempDir(), "demoshell-cache")
}
