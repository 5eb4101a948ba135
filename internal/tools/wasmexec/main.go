// Command wasmexec copies the Go toolchain's wasm_exec.js loader next to
// the dispatcher binary. The loader must match the Go version that built
// dispatch.wasm, so it is copied rather than checked in.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: wasmexec <output>")
		os.Exit(1)
	}

	output := os.Args[1]

	goroot, err := exec.Command("go", "env", "GOROOT").Output()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	root := strings.TrimSpace(string(goroot))

	// lib/wasm since Go 1.24, misc/wasm before.
	var src string
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		candidate := filepath.Join(root, dir, "wasm_exec.js")
		if _, err := os.Stat(candidate); err == nil {
			src = candidate
			break
		}
	}
	if src == "" {
		fmt.Fprintf(os.Stderr, "wasm_exec.js not found under %s\n", root)
		os.Exit(1)
	}

	in, err := os.Open(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	if _, err := io.Copy(f, in); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
