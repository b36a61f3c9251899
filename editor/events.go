package editor

import "github.com/iw2rmb/quill/document"

// apply installs next as the rendered state and reports it through
// OnChange. States equal to the current one are not reported.
func (m *Model) apply(next document.State) {
	changed := !next.Equal(m.state)
	m.state = next
	if !changed {
		return
	}
	m.rebuildContent()
	m.followCursor()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(next)
	}
}
