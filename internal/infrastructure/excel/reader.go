// Package excel lee los archivos de bodega (XLSX o CSV) y arma el libro de resultados con excelize.
package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/afectacion-api/internal/domain"
	"github.com/jhoicas/afectacion-api/internal/domain/entity"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TableReader implementa affectation.TableReader.
type TableReader struct{}

// NewTableReader construye el lector.
func NewTableReader() *TableReader { return &TableReader{} }

// Read lee la primera hoja (XLSX) o el archivo completo (CSV). La primera fila son los encabezados.
func (r *TableReader) Read(fileName string, src io.Reader) (entity.Table, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".xlsx", ".xlsm":
		return readWorkbook(src)
	case ".csv":
		return readCSV(src)
	default:
		return entity.Table{}, fmt.Errorf("%w: %q (se espera .xlsx o .csv)", domain.ErrUnsupportedFormat, ext)
	}
}

func readWorkbook(src io.Reader) (entity.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return entity.Table{}, fmt.Errorf("abrir libro: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return entity.Table{}, domain.ErrEmptyTable
	}

	// Valores crudos: el formato de número de la celda ("#,##0") no debe romper la lectura.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return entity.Table{}, fmt.Errorf("leer hoja %q: %w", sheets[0], err)
	}
	return buildTable(rows)
}

func readCSV(src io.Reader) (entity.Table, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return entity.Table{}, fmt.Errorf("leer csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	// Excel en Windows exporta CSV en cp1252 cuando no se elige UTF-8.
	if !utf8.Valid(raw) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if err != nil {
			return entity.Table{}, fmt.Errorf("decodificar csv: %w", err)
		}
		raw = decoded
	}

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.Comma = sniffDelimiter(raw)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return entity.Table{}, fmt.Errorf("parsear csv: %w", err)
	}
	return buildTable(rows)
}

// sniffDelimiter elige ';' si la línea de encabezados tiene más ';' que ','.
func sniffDelimiter(raw []byte) rune {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

func buildTable(rows [][]string) (entity.Table, error) {
	if len(rows) == 0 {
		return entity.Table{}, domain.ErrEmptyTable
	}
	t := entity.Table{Headers: buildHeaders(rows[0])}
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// buildHeaders normaliza a NFC ("Código" puede venir descompuesto), nombra los encabezados vacíos
// como "Unnamed: i" y agrega sufijos ".1", ".2" a los repetidos.
func buildHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	dupes := make(map[string]int)
	for i, h := range raw {
		h = norm.NFC.String(h)
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for used[name] {
			dupes[h]++
			name = h + "." + strconv.Itoa(dupes[h])
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
