package inspect

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/caffeineduck/demoshell/dispatch"
	"github.com/caffeineduck/demoshell/internal/wasmtest"
)

func newInspector(t *testing.T, opts ...Option) *Inspector {
	t.Helper()
	in, err := New(opts...)
	if err != nil {
		t.Fatalf("failed to create inspector: %v", err)
	}
	t.Cleanup(func() { in.Close() })
	return in
}

func sandboxModule() []byte {
	return wasmtest.Module([]string{"wbg"},
		wasmtest.Entries("tracer", "game_of_life", "mendelbrot", "threed")...)
}

func TestInspectAllExported(t *testing.T) {
	in := newInspector(t)

	report, err := in.Inspect(context.Background(), sandboxModule(), dispatch.DefaultTable())
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !report.OK() {
		t.Errorf("expected all entries callable, got %+v", report.Entries)
	}
	if len(report.Missing()) != 0 || len(report.Unusable()) != 0 {
		t.Errorf("unexpected missing=%v unusable=%v", report.Missing(), report.Unusable())
	}
	want := []string{"game_of_life", "mendelbrot", "threed", "tracer"}
	if !reflect.DeepEqual(report.Exports, want) {
		t.Errorf("exports = %v, want %v", report.Exports, want)
	}
}

func TestInspectMissing(t *testing.T) {
	in := newInspector(t)
	wasm := wasmtest.Module(nil, wasmtest.Entries("tracer", "threed")...)

	report, err := in.Inspect(context.Background(), wasm, dispatch.DefaultTable())
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if report.OK() {
		t.Error("report should not be OK")
	}

	missing := report.Missing()
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing, got %d", len(missing))
	}
	if missing[0].Demo.Flag != "life" || missing[1].Demo.Flag != "mendelbrot" {
		t.Errorf("missing should keep table order, got %s, %s", missing[0].Demo.Flag, missing[1].Demo.Flag)
	}
}

func TestInspectArity(t *testing.T) {
	in := newInspector(t)
	wasm := wasmtest.Module(nil,
		wasmtest.Func{Name: "tracer", Param: true},
		wasmtest.Func{Name: "game_of_life", Result: true},
	)
	table := dispatch.Table{
		{Flag: "tracer", Entry: "tracer"},
		{Flag: "life", Entry: "game_of_life"},
	}

	report, err := in.Inspect(context.Background(), wasm, table)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	unusable := report.Unusable()
	if len(unusable) != 1 || unusable[0].Demo.Entry != "tracer" || unusable[0].Params != 1 {
		t.Errorf("expected tracer to need arguments, got %+v", unusable)
	}
	life := report.Entries[1]
	if !life.Callable() || life.Results != 1 {
		t.Errorf("entry with a result should still be callable, got %+v", life)
	}
}

func TestInspectImports(t *testing.T) {
	in := newInspector(t)
	wasm := wasmtest.Module([]string{"wbg", "env", "wbg"}, wasmtest.Entries("tracer")...)

	report, err := in.Inspect(context.Background(), wasm, nil)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	if !reflect.DeepEqual(report.Imports, []string{"env", "wbg"}) {
		t.Errorf("imports = %v", report.Imports)
	}
	if len(report.Entries) != 0 || !report.OK() {
		t.Errorf("empty table should yield an empty OK report, got %+v", report)
	}
}

func TestInspectInvalidModule(t *testing.T) {
	in := newInspector(t)

	_, err := in.Inspect(context.Background(), []byte("not wasm"), dispatch.DefaultTable())
	if err == nil {
		t.Fatal("expected compile error")
	}
}

func TestInspectCachesCompiledModule(t *testing.T) {
	in := newInspector(t)
	wasm := sandboxModule()

	for i := 0; i < 3; i++ {
		if _, err := in.Inspect(context.Background(), wasm, dispatch.DefaultTable()); err != nil {
			t.Fatalf("inspect %d failed: %v", i, err)
		}
	}

	in.mu.RLock()
	n := len(in.compiled)
	in.mu.RUnlock()
	if n != 1 {
		t.Errorf("expected 1 cached module, got %d", n)
	}
}

func TestInspectDiskCache(t *testing.T) {
	dir := t.TempDir()
	in := newInspector(t, WithDiskCache(dir), WithMemoryLimit(16))

	if _, err := in.Inspect(context.Background(), sandboxModule(), dispatch.DefaultTable()); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
}

func TestInspectFile(t *testing.T) {
	in := newInspector(t)
	path := filepath.Join(t.TempDir(), "sandbox_bg.wasm")
	if err := os.WriteFile(path, sandboxModule(), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := in.InspectFile(context.Background(), path, dispatch.DefaultTable())
	if err != nil {
		t.Fatalf("inspect file failed: %v", err)
	}
	if !report.OK() {
		t.Errorf("expected OK report, got %+v", report.Entries)
	}

	if _, err := in.InspectFile(context.Background(), filepath.Join(t.TempDir(), "nope.wasm"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInspectAfterClose(t *testing.T) {
	in, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := in.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := in.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}

	_, err = in.Inspect(context.Background(), sandboxModule(), nil)
	if !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if got := DefaultCacheDir(); got != filepath.Join("/tmp/xdg", "demoshell") {
		t.Errorf("unexpected cache dir %q", got)
	}
}
