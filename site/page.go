package site

//go:generate go run ../internal/tools/wasmexec ../web/static/wasm_exec.js
//go:generate env GOOS=js GOARCH=wasm go build -o ../web/static/dispatch.wasm ../cmd/dispatch

import (
	"embed"
	"html/template"
	"io"
	"path"

	"github.com/caffeineduck/demoshell/config"
	"github.com/caffeineduck/demoshell/dispatch"
)

// StaticPrefix is the URL path the assets directory is served under.
const StaticPrefix = "/static/"

//go:embed templates/index.html
var templates embed.FS

type pageData struct {
	Title         string
	CanvasID      string
	LinksID       string
	ConfigID      string
	Demos         dispatch.Table
	Page          dispatch.PageConfig
	Namespace     string
	WasmExecURL   string
	ModuleURL     string
	DispatcherURL string
}

func parseIndex() (*template.Template, error) {
	return template.ParseFS(templates, "templates/index.html")
}

func newPageData(cfg *config.Config) pageData {
	return pageData{
		Title:         cfg.Title,
		CanvasID:      cfg.CanvasID,
		LinksID:       cfg.LinksID,
		ConfigID:      dispatch.DefaultPageConfigID,
		Demos:         cfg.Demos,
		Page:          cfg.PageConfig(),
		Namespace:     cfg.Module.Namespace,
		WasmExecURL:   staticURL(cfg.WasmExec),
		ModuleURL:     staticURL(cfg.Module.Script),
		DispatcherURL: staticURL(cfg.Dispatcher),
	}
}

func staticURL(name string) string {
	return path.Join(StaticPrefix, name)
}

func renderIndex(w io.Writer, tmpl *template.Template, data pageData) error {
	return tmpl.ExecuteTemplate(w, "index.html", data)
}
