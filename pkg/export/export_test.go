package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Student", "Present", "Total"},
		Rows: []map[string]string{
			{"Student": "Asha", "Present": "4", "Total": "5"},
			{"Student": "Ravi, K", "Present": "5"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Student,Present,Total\nAsha,4,5\n\"Ravi, K\",5,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Attendance Summary")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("PDF")
	require.True(t, ok)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	f, ok = ParseFormat("")
	require.True(t, ok)
	assert.Equal(t, FormatCSV, f)

	_, ok = ParseFormat("xlsx")
	assert.False(t, ok)
}
