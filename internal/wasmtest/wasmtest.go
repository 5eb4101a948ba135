// Package wasmtest assembles tiny WebAssembly binaries for tests, so the
// inspector can be exercised without a wasm toolchain or checked-in blobs.
package wasmtest

// Func is an exported function with an empty body.
type Func struct {
	Name   string
	Param  bool // takes one i32
	Result bool // returns one i32
}

const (
	sectionType     = 1
	sectionImport   = 2
	sectionFunction = 3
	sectionExport   = 7
	sectionCode     = 10

	kindFunc = 0x00
	valI32   = 0x7f
	opEnd    = 0x0b
	opI32    = 0x41
)

// type indices in the type section written by Module
const (
	typeVoid = iota
	typeParam
	typeResult
)

// Module returns a binary that imports a no-argument function "f" from each
// of imports and exports funcs in order.
func Module(imports []string, funcs ...Func) []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	out = append(out, section(sectionType, vec(
		[]byte{0x60, 0x00, 0x00},
		[]byte{0x60, 0x01, valI32, 0x00},
		[]byte{0x60, 0x00, 0x01, valI32},
	))...)

	if len(imports) > 0 {
		entries := make([][]byte, len(imports))
		for i, mod := range imports {
			e := append(name(mod), name("f")...)
			e = append(e, kindFunc)
			entries[i] = append(e, uleb(typeVoid)...)
		}
		out = append(out, section(sectionImport, vec(entries...))...)
	}

	types := make([][]byte, len(funcs))
	exports := make([][]byte, len(funcs))
	bodies := make([][]byte, len(funcs))
	for i, f := range funcs {
		typ := typeVoid
		body := []byte{0x00} // no locals
		switch {
		case f.Param:
			typ = typeParam
		case f.Result:
			typ = typeResult
			body = append(body, opI32, 0x00)
		}
		body = append(body, opEnd)

		types[i] = uleb(uint32(typ))
		e := append(name(f.Name), kindFunc)
		exports[i] = append(e, uleb(uint32(len(imports)+i))...)
		bodies[i] = append(uleb(uint32(len(body))), body...)
	}

	out = append(out, section(sectionFunction, vec(types...))...)
	out = append(out, section(sectionExport, vec(exports...))...)
	out = append(out, section(sectionCode, vec(bodies...))...)
	return out
}

// Entries returns one no-argument Func per name.
func Entries(names ...string) []Func {
	funcs := make([]Func, len(names))
	for i, n := range names {
		funcs[i] = Func{Name: n}
	}
	return funcs
}

func section(id byte, content []byte) []byte {
	out := append([]byte{id}, uleb(uint32(len(content)))...)
	return append(out, content...)
}

func vec(items ...[]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func name(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}
