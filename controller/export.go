package controller

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/iw2rmb/quill/export"
)

// Snapshot is one serialized export of the document state.
type Snapshot struct {
	Raw    export.Raw
	AST    export.AST
	Digest string
}

// Snapshot serializes the current state. It never changes the state.
func (c *Controller) Snapshot() (Snapshot, error) {
	raw := export.ToRaw(c.state.Content())
	digest, err := export.Digest(raw)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Raw: raw, AST: export.ToAST(c.state), Digest: digest}, nil
}

// LogState writes the raw and AST forms of the current state to the logger
// and, when configured, copies the raw form to the clipboard.
func (c *Controller) LogState() error {
	snap, err := c.Snapshot()
	if err != nil {
		return c.fail(err)
	}
	rawJSON, err := json.Marshal(snap.Raw)
	if err != nil {
		return c.fail(fmt.Errorf("encode raw: %w", err))
	}
	astJSON, err := json.Marshal(snap.AST)
	if err != nil {
		return c.fail(fmt.Errorf("encode ast: %w", err))
	}

	c.logger.Info("document state",
		slog.String("digest", snap.Digest),
		slog.Int("blocks", len(snap.Raw.Blocks)),
		slog.Int("entities", len(snap.Raw.EntityMap)),
		slog.String("raw", string(rawJSON)),
		slog.String("ast", string(astJSON)),
	)

	c.status = "state logged " + shortDigest(snap.Digest)
	if cb := c.cfg.Editor.Clipboard; c.cfg.CopyStateOnLog && cb != nil {
		if err := cb.WriteText(string(rawJSON)); err != nil {
			c.logger.Warn("copy state to clipboard", slog.Any("err", err))
		} else {
			c.status += ", copied"
		}
	}
	return nil
}

// logStateFromUI runs LogState for the Log State button and its key.
func (c *Controller) logStateFromUI() {
	// Failures are already logged and shown in the footer by fail.
	_ = c.LogState()
}

func (c *Controller) fail(err error) error {
	c.logger.Error("log state", slog.Any("err", err))
	c.status = "log state failed"
	return err
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
