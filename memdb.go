package legalize

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MemDatabase is an in-memory Database adapter backed by plain slices. It
// is the adapter used by tests, by DesignBuilder-constructed fixtures, and
// by the batch runner when it loads a JSON design snapshot from disk.
type MemDatabase struct {
	geo    Geometry
	rows   []*Row
	macros []*Macro
	cells  []*Cell
	groups []*Group
	nets   []*Net
}

// NewMemDatabase builds an empty in-memory database over the given
// geometry. Use DesignBuilder, or the Add* methods directly, to populate
// it.
func NewMemDatabase(geo Geometry) *MemDatabase {
	return &MemDatabase{geo: geo}
}

func (m *MemDatabase) AddRow(r *Row)     { m.rows = append(m.rows, r) }
func (m *MemDatabase) AddMacro(mc *Macro) { m.macros = append(m.macros, mc) }
func (m *MemDatabase) AddCell(c *Cell)    { m.cells = append(m.cells, c) }
func (m *MemDatabase) AddGroup(g *Group) { m.groups = append(m.groups, g) }
func (m *MemDatabase) AddNet(n *Net)      { m.nets = append(m.nets, n) }

// Database returns the capability record view of this in-memory store.
func (m *MemDatabase) Database() Database {
	return Database{
		Geometry: m.geo,
		Rows:     func() []*Row { return m.rows },
		Macros:   func() []*Macro { return m.macros },
		Cells:    func() []*Cell { return m.cells },
		Groups:   func() []*Group { return m.groups },
		Nets:     func() []*Net { return m.nets },
		SetCellLocation: func(cell *Cell, x, y int) error {
			cell.X, cell.Y = x, y
			return nil
		},
	}
}

// LoadSnapshot populates an in-memory database from a DesignSnapshot,
// resolving macro/cell/group name references into pointers.
func LoadSnapshot(snap DesignSnapshot) (*MemDatabase, error) {
	geo := NewGeometry(snap.CoreLLX, snap.CoreLLY, snap.CoreURX, snap.CoreURY, snap.SiteWidth, snap.RowHeight)
	db := NewMemDatabase(geo)

	macrosByName := make(map[string]*Macro, len(snap.Macros))
	for _, ms := range snap.Macros {
		mc := &Macro{
			Name:        ms.Name,
			Width:       ms.Width,
			Height:      ms.Height,
			TopPower:    parsePower(ms.TopPower),
			BottomPower: parsePower(ms.BottomPower),
			IsMultiRow:  ms.IsMultiRow,
		}
		macrosByName[mc.Name] = mc
		db.AddMacro(mc)
	}

	for _, rs := range snap.Rows {
		db.AddRow(&Row{
			Name:      rs.Name,
			OriginX:   rs.OriginX,
			OriginY:   rs.OriginY,
			SiteWidth: rs.SiteWidth,
			NumSites:  rs.NumSites,
			Height:    rs.Height,
			Power:     parsePower(rs.Power),
			Orient:    rs.Orient,
		})
	}

	groupsByName := make(map[string]*Group, len(snap.Groups))
	for _, gs := range snap.Groups {
		rects := make([]Rect, len(gs.Rects))
		for i, rs := range gs.Rects {
			rects[i] = Rect{LLX: rs.LLX, LLY: rs.LLY, URX: rs.URX, URY: rs.URY}
		}
		group := &Group{Name: gs.Name, Rects: rects, CellNames: gs.CellNames}
		groupsByName[group.Name] = group
		db.AddGroup(group)
	}

	cellsByName := make(map[string]*Cell, len(snap.Cells))
	for _, cs := range snap.Cells {
		macro, ok := macrosByName[cs.Macro]
		if !ok {
			return nil, fmt.Errorf("legalize: cell %q references unknown macro %q", cs.Name, cs.Macro)
		}
		var group *Group
		if cs.Group != "" {
			group, ok = groupsByName[cs.Group]
			if !ok {
				return nil, fmt.Errorf("legalize: cell %q references unknown group %q", cs.Name, cs.Group)
			}
		}
		cell := &Cell{
			Name:      cs.Name,
			Macro:     macro,
			X:         cs.X,
			Y:         cs.Y,
			InitX:     cs.X,
			InitY:     cs.Y,
			Fixed:     cs.Fixed,
			Group:     group,
			RowIndex:  -1,
			SiteIndex: -1,
		}
		cellsByName[cell.Name] = cell
		db.AddCell(cell)
	}

	for _, ns := range snap.Nets {
		pins := make([]Pin, len(ns.Pins))
		for i, ps := range ns.Pins {
			pins[i] = Pin{CellName: ps.Cell, OffsetX: ps.OffsetX, OffsetY: ps.OffsetY}
		}
		db.AddNet(&Net{Name: ns.Name, Pins: pins})
	}

	return db, nil
}

// ReadSnapshotFile loads a DesignSnapshot from a JSON or YAML file,
// selecting the decoder by file extension (".yaml"/".yml" use YAML,
// everything else is treated as JSON).
func ReadSnapshotFile(path string) (DesignSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return DesignSnapshot{}, fmt.Errorf("legalize: opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	var snap DesignSnapshot
	if isYAMLPath(path) {
		if err := yaml.NewDecoder(f).Decode(&snap); err != nil {
			return DesignSnapshot{}, fmt.Errorf("legalize: decoding yaml snapshot %s: %w", path, err)
		}
		return snap, nil
	}
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return DesignSnapshot{}, fmt.Errorf("legalize: decoding json snapshot %s: %w", path, err)
	}
	return snap, nil
}

// WriteSnapshotFile writes a DesignSnapshot out as indented JSON, the
// format the batch runner and tests use for fixtures.
func WriteSnapshotFile(path string, snap DesignSnapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("legalize: creating snapshot %s: %w", path, err)
	}
	defer f.Close()
	return writeSnapshot(f, snap)
}

func writeSnapshot(w io.Writer, snap DesignSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func isYAMLPath(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
