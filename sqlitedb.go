package legalize

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDatabase is a Database adapter backed by a SQLite file with a
// fixed schema (rows, macros, cells, groups, group_cells, nets, pins).
// It is the one part of this package allowed to touch a real external
// store: the upstream LEF/DEF reader is an explicit external
// collaborator this package does not implement, and a SQLite file stands
// in for "whatever already-populated database the caller hands us."
type SQLiteDatabase struct {
	db   *sql.DB
	geo  Geometry
	path string
}

// OpenSQLiteDatabase opens (without creating) a SQLite design database at
// path and loads its core geometry.
func OpenSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("legalize: opening sqlite database %s: %w", path, err)
	}

	s := &SQLiteDatabase{db: db, path: path}
	if err := s.loadGeometry(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteDatabase) Close() error {
	return s.db.Close()
}

func (s *SQLiteDatabase) loadGeometry() error {
	row := s.db.QueryRow(`SELECT core_llx, core_lly, core_urx, core_ury, site_width, row_height FROM core LIMIT 1`)
	var llx, lly, urx, ury, sw, rh int
	if err := row.Scan(&llx, &lly, &urx, &ury, &sw, &rh); err != nil {
		return fmt.Errorf("legalize: reading core geometry from %s: %w", s.path, err)
	}
	s.geo = NewGeometry(llx, lly, urx, ury, sw, rh)
	return nil
}

// Database returns the capability record view of this SQLite store. Rows,
// macros, cells, groups, and nets are loaded eagerly into memory on first
// call and cached; SetCellLocation writes through to the cells table
// immediately.
func (s *SQLiteDatabase) Database() (Database, error) {
	macros, macrosByName, err := s.loadMacros()
	if err != nil {
		return Database{}, err
	}
	rows, err := s.loadRows()
	if err != nil {
		return Database{}, err
	}
	groups, groupsByName, err := s.loadGroups()
	if err != nil {
		return Database{}, err
	}
	cells, err := s.loadCells(macrosByName, groupsByName)
	if err != nil {
		return Database{}, err
	}
	nets, err := s.loadNets()
	if err != nil {
		return Database{}, err
	}

	return Database{
		Geometry: s.geo,
		Rows:     func() []*Row { return rows },
		Macros:   func() []*Macro { return macros },
		Cells:    func() []*Cell { return cells },
		Groups:   func() []*Group { return groups },
		Nets:     func() []*Net { return nets },
		SetCellLocation: func(cell *Cell, x, y int) error {
			_, err := s.db.Exec(`UPDATE cells SET x = ?, y = ? WHERE name = ?`, x, y, cell.Name)
			if err != nil {
				return fmt.Errorf("legalize: writing legalized location for cell %q: %w", cell.Name, err)
			}
			cell.X, cell.Y = x, y
			return nil
		},
	}, nil
}

func (s *SQLiteDatabase) loadMacros() ([]*Macro, map[string]*Macro, error) {
	rows, err := s.db.Query(`SELECT name, width, height, top_power, bottom_power, is_multi_row FROM macros`)
	if err != nil {
		return nil, nil, fmt.Errorf("legalize: querying macros: %w", err)
	}
	defer rows.Close()

	var macros []*Macro
	byName := make(map[string]*Macro)
	for rows.Next() {
		var name, top, bottom string
		var width, height int
		var multiRow bool
		if err := rows.Scan(&name, &width, &height, &top, &bottom, &multiRow); err != nil {
			return nil, nil, fmt.Errorf("legalize: scanning macro row: %w", err)
		}
		m := &Macro{Name: name, Width: width, Height: height, TopPower: parsePower(top), BottomPower: parsePower(bottom), IsMultiRow: multiRow}
		macros = append(macros, m)
		byName[name] = m
	}
	return macros, byName, rows.Err()
}

func (s *SQLiteDatabase) loadRows() ([]*Row, error) {
	rows, err := s.db.Query(`SELECT name, origin_x, origin_y, site_width, num_sites, height, power, orient FROM rows`)
	if err != nil {
		return nil, fmt.Errorf("legalize: querying rows: %w", err)
	}
	defer rows.Close()

	var result []*Row
	for rows.Next() {
		var r Row
		var power string
		if err := rows.Scan(&r.Name, &r.OriginX, &r.OriginY, &r.SiteWidth, &r.NumSites, &r.Height, &power, &r.Orient); err != nil {
			return nil, fmt.Errorf("legalize: scanning row record: %w", err)
		}
		r.Power = parsePower(power)
		result = append(result, &r)
	}
	return result, rows.Err()
}

func (s *SQLiteDatabase) loadGroups() ([]*Group, map[string]*Group, error) {
	rows, err := s.db.Query(`SELECT name, llx, lly, urx, ury FROM group_rects`)
	if err != nil {
		return nil, nil, fmt.Errorf("legalize: querying group_rects: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]*Group)
	var order []string
	for rows.Next() {
		var name string
		var llx, lly, urx, ury int
		if err := rows.Scan(&name, &llx, &lly, &urx, &ury); err != nil {
			return nil, nil, fmt.Errorf("legalize: scanning group_rects row: %w", err)
		}
		g, ok := byName[name]
		if !ok {
			g = &Group{Name: name}
			byName[name] = g
			order = append(order, name)
		}
		g.Rects = append(g.Rects, Rect{LLX: llx, LLY: lly, URX: urx, URY: ury})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	groups := make([]*Group, len(order))
	for i, name := range order {
		groups[i] = byName[name]
	}
	return groups, byName, nil
}

func (s *SQLiteDatabase) loadCells(macrosByName map[string]*Macro, groupsByName map[string]*Group) ([]*Cell, error) {
	rows, err := s.db.Query(`SELECT name, macro, x, y, fixed, group_name FROM cells`)
	if err != nil {
		return nil, fmt.Errorf("legalize: querying cells: %w", err)
	}
	defer rows.Close()

	var cells []*Cell
	for rows.Next() {
		var name, macroName string
		var x, y int
		var fixed bool
		var groupName sql.NullString
		if err := rows.Scan(&name, &macroName, &x, &y, &fixed, &groupName); err != nil {
			return nil, fmt.Errorf("legalize: scanning cell row: %w", err)
		}
		macro, ok := macrosByName[macroName]
		if !ok {
			return nil, fmt.Errorf("legalize: cell %q references unknown macro %q", name, macroName)
		}
		var group *Group
		if groupName.Valid && groupName.String != "" {
			group, ok = groupsByName[groupName.String]
			if !ok {
				return nil, fmt.Errorf("legalize: cell %q references unknown group %q", name, groupName.String)
			}
		}
		cells = append(cells, &Cell{
			Name: name, Macro: macro, X: x, Y: y, InitX: x, InitY: y,
			Fixed: fixed, Group: group, RowIndex: -1, SiteIndex: -1,
		})
	}
	return cells, rows.Err()
}

func (s *SQLiteDatabase) loadNets() ([]*Net, error) {
	rows, err := s.db.Query(`SELECT net, cell, offset_x, offset_y FROM pins ORDER BY net`)
	if err != nil {
		return nil, fmt.Errorf("legalize: querying pins: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]*Net)
	var order []string
	for rows.Next() {
		var net, cell string
		var ox, oy int
		if err := rows.Scan(&net, &cell, &ox, &oy); err != nil {
			return nil, fmt.Errorf("legalize: scanning pins row: %w", err)
		}
		n, ok := byName[net]
		if !ok {
			n = &Net{Name: net}
			byName[net] = n
			order = append(order, net)
		}
		n.Pins = append(n.Pins, Pin{CellName: cell, OffsetX: ox, OffsetY: oy})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	nets := make([]*Net, len(order))
	for i, name := range order {
		nets[i] = byName[name]
	}
	return nets, nil
}
