//go:build !standalone

package pluginapi

import (
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/bridge"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/target"
)

// EntryFunc is the uniform signature of one discoverable entry point.
type EntryFunc func(pos string, buf *databuf.Buffer, opts engine.Options) rc.ReturnCode

// Entry is one named entry point: engine dot operation, e.g. "scom.read".
type Entry struct {
	Name   string
	Engine string
	Op     engine.Op
	Call   EntryFunc
}

// Table is the plugin's discoverable surface: its identity string plus one
// entry per enabled engine/operation pair.
type Table struct {
	Ident   string
	Entries []Entry
}

// Find returns the named entry.
func (t *Table) Find(name string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// EntryPoints builds the entry-point table over the given bridge. The table
// reflects the build's capability set: entries exist only for enabled
// engines, and their behavior is identical to the static call surface since
// both dispatch through the same bridge.
func EntryPoints(b *bridge.Bridge) *Table {
	table := &Table{Ident: Ident()}
	for _, name := range b.Registry().Names() {
		desc, err := b.Registry().Describe(name)
		if err != nil || !desc.Enabled {
			continue
		}
		for _, op := range desc.Ops.Ops() {
			engineName, opCopy := name, op
			table.Entries = append(table.Entries, Entry{
				Name:   engineName + "." + opCopy.String(),
				Engine: engineName,
				Op:     opCopy,
				Call: func(pos string, buf *databuf.Buffer, opts engine.Options) rc.ReturnCode {
					p, err := target.ParsePosition(pos)
					if err != nil {
						return rc.ClientError(rc.NoSuchTarget)
					}
					return b.Execute(p, engineName, opCopy, buf, opts)
				},
			})
		}
	}
	return table
}

// NewEntryPoints is the symbol a loading front end resolves after dlopen:
// it assembles the default bridge for this build and returns the table.
func NewEntryPoints() (*Table, error) {
	b, err := NewBridge("", defaultTransport())
	if err != nil {
		return nil, err
	}
	return EntryPoints(b), nil
}
