package entity

// Table representa la primera hoja de un archivo cargado: encabezados y filas con el texto crudo de cada celda.
// Las filas pueden ser más cortas que Headers; las celdas faltantes se leen como vacías.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex devuelve la posición del encabezado o -1 si no existe.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell devuelve el valor de la celda (fila, columna) o "" si está fuera de rango.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Clone copia encabezados y filas para poder extender la tabla sin tocar la original.
func (t Table) Clone() Table {
	out := Table{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}
