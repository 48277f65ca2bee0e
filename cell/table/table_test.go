package table

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddColumn(t *testing.T) {
	tb := New()
	require.NoError(t, tb.AddColumn("a", []float64{1, 2, 3}))
	require.NoError(t, tb.AddColumn("b", []float64{4, 5, 6}))
	require.ErrorIs(t, tb.AddColumn("c", []float64{1}), ErrLengthMismatch)

	require.NoError(t, tb.AddColumn("a", []float64{7, 8, 9}))
	assert.Equal(t, []string{"a", "b"}, tb.Names())

	a, ok := tb.Column("a")
	require.True(t, ok)
	assert.Equal(t, []float64{7, 8, 9}, a)

	_, ok = tb.Column("missing")
	assert.False(t, ok)
	assert.Equal(t, 3, tb.Len())
	assert.Equal(t, 2, tb.Width())
}

func TestReadCSVComma(t *testing.T) {
	in := "Time(s),Voltage(mV),Capacity(mAh)\n0,3000,0\n1,3010,0.5\n2,n/a,1.0\n\n"
	tb, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Time(s)", "Voltage(mV)", "Capacity(mAh)"}, tb.Names())
	assert.Equal(t, 3, tb.Len())

	v, _ := tb.Column("Voltage(mV)")
	assert.Equal(t, 3000.0, v[0])
	assert.True(t, math.IsNaN(v[2]))
}

func TestReadCSVTab(t *testing.T) {
	in := "\xef\xbb\xbf시간(s)\t전압(V)\t전류(A)\n0\t3.5\t1,0\n1\t3.6\n"
	tb, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"시간(s)", "전압(V)", "전류(A)"}, tb.Names())
	i, _ := tb.Column("전류(A)")
	assert.True(t, math.IsNaN(i[0]), "comma inside a tab field is not a number")
	assert.True(t, math.IsNaN(i[1]), "short rows are padded with NaN")
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.ErrorIs(t, err, ErrNoHeader)
}

func TestXLSXRoundTrip(t *testing.T) {
	tb := New()
	require.NoError(t, tb.AddColumn("Voltage(V)", []float64{3.5, math.NaN(), 3.7}))
	require.NoError(t, tb.AddColumn("dV/dQ", []float64{0.1, 0.2, 0.3}))

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, tb, "ica"))

	back, err := ReadXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, tb.Names(), back.Names())

	v, _ := back.Column("Voltage(V)")
	require.Len(t, v, 3)
	assert.InDelta(t, 3.5, v[0], 1e-12)
	assert.True(t, math.IsNaN(v[1]))
	assert.InDelta(t, 3.7, v[2], 1e-12)
}

func TestReadFileDispatch(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "trace.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Voltage(V)\n3.1\n3.2\n"), 0o600))
	tb, err := ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Len())

	xlsxPath := filepath.Join(dir, "trace.xlsx")
	f, err := os.Create(xlsxPath)
	require.NoError(t, err)
	require.NoError(t, WriteXLSX(f, tb, ""))
	require.NoError(t, f.Close())

	back, err := ReadFile(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Voltage(V)"}, back.Names())

	_, err = ReadFile(filepath.Join(dir, "trace.mdb"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
