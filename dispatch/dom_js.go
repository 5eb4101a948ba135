//go:build js && wasm

package dispatch

import (
	"fmt"
	"syscall/js"
)

var (
	window   = js.Global()
	document = js.Global().Get("document")
)

type domElement struct {
	v js.Value
}

func (e domElement) SetDisplay(value string) {
	e.v.Get("style").Set("display", value)
}

func (e domElement) SetSize(width, height int) {
	e.v.Set("width", width)
	e.v.Set("height", height)
}

type domPage struct {
	canvas domElement
	links  domElement
}

// DOMPage binds the canvas and links regions by element id.
func DOMPage(canvasID, linksID string) (Page, error) {
	canvas := document.Call("getElementById", canvasID)
	if !canvas.Truthy() {
		return nil, fmt.Errorf("canvas element #%s not found", canvasID)
	}
	links := document.Call("getElementById", linksID)
	if !links.Truthy() {
		return nil, fmt.Errorf("links element #%s not found", linksID)
	}
	return &domPage{canvas: domElement{canvas}, links: domElement{links}}, nil
}

func (p *domPage) Canvas() Element { return p.canvas }
func (p *domPage) Links() Element  { return p.links }

func (p *domPage) Viewport() (int, int) {
	return window.Get("innerWidth").Int(), window.Get("innerHeight").Int()
}

type globalEntryPoints struct {
	namespace string
}

// GlobalEntryPoints calls window[namespace][entry](). The page script is
// expected to have stored the external module's exports there.
func GlobalEntryPoints(namespace string) EntryPoints {
	return globalEntryPoints{namespace: namespace}
}

func (g globalEntryPoints) Call(entry string) {
	window.Get(g.namespace).Call(entry)
}

// LoadPageConfig reads the JSON page config from the element with the given
// id. A page without one gets DefaultPageConfig.
func LoadPageConfig(id string) (PageConfig, error) {
	el := document.Call("getElementById", id)
	if !el.Truthy() {
		return DefaultPageConfig(), nil
	}
	return ParsePageConfig([]byte(el.Get("textContent").String()))
}

// Location returns the current query string, including its leading '?'.
func Location() string {
	return window.Get("location").Get("search").String()
}
