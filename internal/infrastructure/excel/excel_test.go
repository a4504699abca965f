package excel_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/afectacion-api/internal/application/affectation"
	"github.com/jhoicas/afectacion-api/internal/domain"
	"github.com/jhoicas/afectacion-api/internal/infrastructure/excel"
)

var headers = []interface{}{
	"Código Producto", "Nombre producto", "Cantidad almacenada en bodega",
	"Unidad de medida", "Cantidad afectada cliente", "Unidad de medida2",
}

// buildWorkbook arma un .xlsx en memoria con los encabezados y filas dados.
func buildWorkbook(t *testing.T, head []interface{}, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &head))
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		r := r
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestRead_XLSX(t *testing.T) {
	data := buildWorkbook(t, headers,
		[]interface{}{101, "Arroz", 2, "6 UN", 1, "Y40"},
		[]interface{}{nil, nil, nil, nil, nil, nil},
		[]interface{}{"00102", "Frijol", 1.5, "Q", nil, nil},
	)

	table, err := excel.NewTableReader().Read("bodega.XLSX", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Código Producto", "Nombre producto", "Cantidad almacenada en bodega",
		"Unidad de medida", "Cantidad afectada cliente", "Unidad de medida2",
	}, table.Headers)
	require.Len(t, table.Rows, 2, "las filas vacías se omiten")
	assert.Equal(t, "101", table.Cell(0, 0))
	assert.Equal(t, "6 UN", table.Cell(0, 3))
	assert.Equal(t, "00102", table.Cell(1, 0))
	assert.Equal(t, "1.5", table.Cell(1, 2))
	assert.Equal(t, "", table.Cell(1, 5))
}

func TestRead_XLSXConFormatoNumerico(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headers))
	require.NoError(t, f.SetCellValue(sheet, "C2", 1234567))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C2", style))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := excel.NewTableReader().Read("x.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, "1234567", table.Cell(0, 2), "se lee el valor crudo, sin separador de miles")
}

func TestRead_EncabezadosDescompuestosYRepetidos(t *testing.T) {
	nfd := norm.NFD.String("Código Producto")
	require.NotEqual(t, "Código Producto", nfd)
	data := buildWorkbook(t, []interface{}{nfd, "", "Bodega", "Bodega"}, []interface{}{"1", "x", "a", "b"})

	table, err := excel.NewTableReader().Read("x.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Código Producto", "Unnamed: 1", "Bodega", "Bodega.1"}, table.Headers)
}

func TestRead_CSVWindows1252(t *testing.T) {
	content := "Código Producto;Nombre producto;Cantidad almacenada en bodega;Unidad de medida;Cantidad afectada cliente;Unidad de medida2\n" +
		"7;Azúcar;3;UN;1;UN\n"
	encoded, err := charmap.Windows1252.NewEncoder().String(content)
	require.NoError(t, err)

	table, err := excel.NewTableReader().Read("bodega.csv", strings.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, "Código Producto", table.Headers[0])
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Azúcar", table.Cell(0, 1))
}

func TestRead_CSVUTF8ConBOM(t *testing.T) {
	content := "\xEF\xBB\xBFCódigo Producto,Nombre producto\n1,\"Leche, entera\"\n"
	table, err := excel.NewTableReader().Read("b.csv", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, []string{"Código Producto", "Nombre producto"}, table.Headers)
	assert.Equal(t, "Leche, entera", table.Cell(0, 1))
}

func TestRead_FormatoNoSoportado(t *testing.T) {
	_, err := excel.NewTableReader().Read("bodega.pdf", strings.NewReader("x"))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestRead_ArchivoCorrupto(t *testing.T) {
	_, err := excel.NewTableReader().Read("bodega.xlsx", strings.NewReader("no es un zip"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestRead_CSVVacio(t *testing.T) {
	_, err := excel.NewTableReader().Read("v.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyTable)
}

func TestWrite_DosHojas(t *testing.T) {
	data := buildWorkbook(t, append(headers, "Bodega"),
		[]interface{}{101, "Arroz", 1, "Q", 250, "UN", "Norte"},
		[]interface{}{"00102", "Frijol", 0, "UN", 5, "UN", nil},
	)
	table, err := excel.NewTableReader().Read("x.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	res, err := affectation.Process(table)
	require.NoError(t, err)

	layout := affectation.ReportLayout{SummarySheet: "Resumen", DetailSheet: "Detalle con Unidades"}
	out, err := excel.NewReportWriter().Write(res, layout)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Resumen", "Detalle con Unidades"}, f.GetSheetList())

	summary, err := f.GetRows("Resumen")
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, affectation.SummaryHeaders, summary[0])
	// orden numérico: 101 < 00102
	assert.Equal(t, []string{"101", "1000", "250", "25"}, summary[1][:4])
	assert.Equal(t, []string{"00102", "0", "5", "inf"}, summary[2][:4])

	detail, err := f.GetRows("Detalle con Unidades")
	require.NoError(t, err)
	require.Len(t, detail, 3)
	assert.Equal(t, "Bodega", detail[0][6])
	assert.Equal(t, affectation.ColStoredUnits, detail[0][7])
	assert.Equal(t, affectation.ColAffectedUnits, detail[0][8])
	assert.Equal(t, "1000", detail[1][7])
	assert.Equal(t, "250", detail[1][8])

	code, err := f.GetCellValue("Detalle con Unidades", "A3")
	require.NoError(t, err)
	assert.Equal(t, "00102", code, "el código con ceros a la izquierda sigue siendo texto")
}
