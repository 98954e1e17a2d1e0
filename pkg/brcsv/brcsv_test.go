package brcsv

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyUsesCommaSeparator(t *testing.T) {
	cases := map[string]string{
		"120.5":  "120,50",
		"0":      "0,00",
		"22.555": "22,56",
		"-3.1":   "-3,10",
	}
	for in, want := range cases {
		d, err := decimal.NewFromString(in)
		require.NoError(t, err)
		assert.Equal(t, want, Money(d))
	}
}

func TestWriterDialect(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	require.NoError(t, w.Write([]string{"Data", "Valor"}))
	require.NoError(t, w.Write([]string{"31/01/2024 12:00:00", "120,50"}))
	require.NoError(t, w.Flush())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\uFEFF"), "Excel needs the UTF-8 BOM first")
	assert.Contains(t, out, "Data;Valor")
	assert.Contains(t, out, "31/01/2024 12:00:00;120,50")
}

func TestTimeFormats(t *testing.T) {
	ts := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "31/01/2024 23:59:59", Time(ts))
	assert.Equal(t, "31/01/2024 23:59:59", TimePtr(&ts))
	assert.Equal(t, "", TimePtr(nil))
}

func TestBool(t *testing.T) {
	assert.Equal(t, "Sim", Bool(true))
	assert.Equal(t, "Não", Bool(false))
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "relatorio_vendas_20240131_235959.csv", Filename("vendas", ts))
}
