package dispatch

import (
	"encoding/json"
	"fmt"
)

// Defaults shared by the page server and the browser dispatcher.
const (
	DefaultCanvasID     = "canvas"
	DefaultLinksID      = "links"
	DefaultNamespace    = "demos"
	DefaultPageConfigID = "demoshell-config"
)

// PageConfig is what the served page tells the dispatcher about itself.
// It travels as JSON inside the element with id DefaultPageConfigID.
type PageConfig struct {
	CanvasID  string `json:"canvas"`
	LinksID   string `json:"links"`
	Namespace string `json:"namespace"`
	Demos     Table  `json:"demos"`
}

func DefaultPageConfig() PageConfig {
	return PageConfig{
		CanvasID:  DefaultCanvasID,
		LinksID:   DefaultLinksID,
		Namespace: DefaultNamespace,
		Demos:     DefaultTable(),
	}
}

// ParsePageConfig decodes data and fills omitted fields from
// DefaultPageConfig. An explicitly empty demos list stays empty.
func ParsePageConfig(data []byte) (PageConfig, error) {
	var raw struct {
		CanvasID  string `json:"canvas"`
		LinksID   string `json:"links"`
		Namespace string `json:"namespace"`
		Demos     *Table `json:"demos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return PageConfig{}, fmt.Errorf("decode page config: %w", err)
	}

	cfg := DefaultPageConfig()
	if raw.CanvasID != "" {
		cfg.CanvasID = raw.CanvasID
	}
	if raw.LinksID != "" {
		cfg.LinksID = raw.LinksID
	}
	if raw.Namespace != "" {
		cfg.Namespace = raw.Namespace
	}
	if raw.Demos != nil {
		cfg.Demos = *raw.Demos
	}

	if err := cfg.Demos.Validate(); err != nil {
		return PageConfig{}, fmt.Errorf("page config demos: %w", err)
	}
	return cfg, nil
}

// Marshal encodes c for embedding in a page.
func (c PageConfig) Marshal() ([]byte, error) {
	return json.Marshal(c)
}
