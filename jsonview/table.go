package jsonview

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// buildTable renders one sheet: a header row of column keys and one body row per sheet row.
func (s *state) buildTable(sheet Sheet) (*html.Node, error) {
	s.warnLateColumns(sheet)

	table := element(atom.Table)

	thead := element(atom.Thead)
	headerRow := element(atom.Tr)
	for _, column := range sheet.Columns {
		headerRow.AppendChild(elementWithText(atom.Th, column))
	}
	thead.AppendChild(headerRow)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for i, row := range sheet.Rows {
		if err := s.checkContext(); err != nil {
			return nil, err
		}

		tr := element(atom.Tr)
		for _, column := range sheet.Columns {
			pos := CellPosition{Sheet: sheet.Name, Row: i, Column: column}

			cell, err := s.buildCell(row, pos)
			if err != nil {
				return nil, err
			}
			td := element(atom.Td)
			td.AppendChild(cell)
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	return table, nil
}

func (s *state) buildCell(row Row, pos CellPosition) (*html.Node, error) {
	value, ok := row.Get(pos.Column)
	if !ok {
		if s.config.MissingCells == MissingCellError {
			return nil, cellError(pos, fmt.Errorf("%w: row has no value for column", ErrUnrenderableCell))
		}
		s.addWarning(WarningMissingCell, pos, "row has no value for column; rendered empty")
		return s.textCell(""), nil
	}

	return s.renderCell(s.detector.Detect(value), pos)
}

// warnLateColumns reports columns that the first row does not declare.
func (s *state) warnLateColumns(sheet Sheet) {
	if len(sheet.Rows) == 0 {
		return
	}
	first := sheet.Rows[0]
	for _, column := range sheet.Columns {
		if _, ok := first.Get(column); ok {
			continue
		}
		for i, row := range sheet.Rows {
			if _, ok := row.Get(column); ok {
				s.addWarning(
					WarningLateColumn,
					CellPosition{Sheet: sheet.Name, Row: i, Column: column},
					fmt.Sprintf("column first appears in row %d; appended after the first row's columns", i),
				)
				break
			}
		}
	}
}
