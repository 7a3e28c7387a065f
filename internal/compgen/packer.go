package compgen

// MaxRowSize is the number of controls an action row can hold.
const MaxRowSize = 5

// PackRows groups a flat component list into action rows. A row separator
// closes the current row; separators that would produce an empty row are
// ignored. A row that reaches MaxRowSize is closed automatically.
//
// The returned rows never contain KindRow components and are never empty.
func PackRows(comps []*Component) [][]*Component {
	var rows [][]*Component
	var current []*Component

	flush := func() {
		if len(current) > 0 {
			rows = append(rows, current)
			current = nil
		}
	}

	for _, c := range comps {
		if c.Kind == KindRow {
			flush()
			continue
		}
		current = append(current, c)
		if len(current) == MaxRowSize {
			flush()
		}
	}
	flush()

	return rows
}

// CheckRows reports the first component in each row whose kind differs from
// the row's first component.
func CheckRows(rows [][]*Component) []*Error {
	var errs []*Error
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		want := row[0].Kind
		for _, c := range row[1:] {
			if c.Kind != want {
				errs = append(errs, NewErrorWithHint(c.Position, MsgMixedRow,
					"insert row!() before this "+c.Kind.String()))
				break
			}
		}
	}
	return errs
}
