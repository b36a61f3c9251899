package main

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/quill/controller"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/internal/config"
	"github.com/iw2rmb/quill/toolbar"
)

// controllerConfig maps the file configuration onto a controller.Config.
func controllerConfig(cfg config.Config, logger *slog.Logger) (controller.Config, error) {
	cc := controller.DefaultConfig()
	cc.Logger = logger
	cc.URLPlaceholder = cfg.Editor.URLPlaceholder
	cc.CopyStateOnLog = cfg.Clipboard.CopyStateOnLog

	ec := &cc.Editor
	ec.Placeholder = cfg.Editor.Placeholder
	ec.TabWidth = cfg.Editor.TabWidth
	ec.HistoryLimit = cfg.Editor.HistoryLimit
	ec.MaxListDepth = cfg.Editor.MaxListDepth
	ec.ReadOnly = cfg.Editor.ReadOnly
	if cfg.Editor.Wrap == "grapheme" {
		ec.WrapMode = editor.WrapGrapheme
	}
	if cfg.Clipboard.Enabled {
		ec.Clipboard = editor.SystemClipboard{}
	}

	km, err := toolbarKeyMap(cfg.Keys)
	if err != nil {
		return controller.Config{}, err
	}
	cc.Toolbar.KeyMap = km
	return cc, nil
}

func toolbarKeyMap(overrides map[string]string) (toolbar.KeyMap, error) {
	km := toolbar.DefaultKeyMap()
	for name, k := range overrides {
		b := key.NewBinding(key.WithKeys(k), key.WithHelp(k, name))
		switch name {
		case toolbar.Bold.String():
			km.Bold = b
		case toolbar.Italic.String():
			km.Italic = b
		case toolbar.Header.String():
			km.Header = b
		case toolbar.List.String():
			km.List = b
		case toolbar.AddLink.String():
			km.AddLink = b
		case toolbar.RemoveLink.String():
			km.RemoveLink = b
		default:
			return toolbar.KeyMap{}, fmt.Errorf("%w: keys: unknown command %q", config.ErrInvalidConfig, name)
		}
	}
	return km, nil
}
