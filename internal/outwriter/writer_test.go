package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/paleoreel/internal/contract"
	"github.com/huangsam/paleoreel/internal/parquet"
	"github.com/huangsam/paleoreel/schema"
	pq "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Precision:    2,
		Output:       schema.TextOut,
		Width:        120,
		CacheBackend: schema.NoneBackend,
	}
}

func sampleWeights() []schema.WeightRecord {
	return []schema.WeightRecord{
		{Frame: 0, Time: 56.0, Series: "d13C", Alpha: 1, Alpha2: 1, Width: 3},
		{Frame: 0, Time: 56.0, Series: "d18O", Alpha: 0.1, Alpha2: 0.1, Width: 1},
		{Frame: 1, Time: 55.9, Series: "d13C", Alpha: 1, Alpha2: 0.82, Width: 2.6666666},
	}
}

func sampleEpochs() []schema.EpochFrame {
	return []schema.EpochFrame{
		{Frame: 0, Time: 57},
		{Frame: 1, Time: 56, Label: "PETM", Note: "excursion", Matched: true},
		{Frame: 2, Time: 55.9, Label: "PETM", Note: "excursion", Matched: true},
		{Frame: 3, Time: 55, Label: "Eocene", Matched: true},
	}
}

func sampleCorrelation() []schema.CorrelationFrame {
	return []schema.CorrelationFrame{{
		Frame:  0,
		Start:  0,
		End:    3,
		Series: []string{"X", "Y"},
		Matrix: [][]float64{{1, -0.5}, {-0.5, 1}},
	}, {
		Frame:  1,
		Start:  1,
		End:    4,
		Series: []string{"X", "Y"},
		Matrix: [][]float64{{1, math.NaN()}, {math.NaN(), math.NaN()}},
	}}
}

func readCSV(t *testing.T, data string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteWeightsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeWeightsCSV(&buf, sampleWeights(), createFormatters(-1)))

	rows := readCSV(t, buf.String())
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"frame", "time", "series", "alpha", "alpha2", "width"}, rows[0])
	assert.Equal(t, []string{"1", "55.9", "d13C", "1", "0.82", "2.6666666"}, rows[3])
}

func TestWriteWeightsTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig()
	require.NoError(t, writeWeightsTable(&buf, sampleWeights(), cfg, createFormatters(2), time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "d18O")
	assert.Contains(t, out, "2.67")
	assert.Contains(t, out, "3 weights computed")
	assert.Contains(t, out, "Cache backend: none")
}

func TestWriteEpochsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeEpochsCSV(&buf, sampleEpochs(), createFormatters(-1)))

	rows := readCSV(t, buf.String())
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"0", "57", "", "", "false"}, rows[1])
	assert.Equal(t, []string{"1", "56", "PETM", "excursion", "true"}, rows[2])
}

func TestEpochRuns(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 0}, {1, 2}, {3, 3}}, epochRuns(sampleEpochs()))
	assert.Empty(t, epochRuns(nil))
}

func TestWriteEpochsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeEpochsTable(&buf, sampleEpochs(), testConfig(), createFormatters(1), time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "1-2")
	assert.Contains(t, out, "56.0 .. 55.9")
	assert.Contains(t, out, "PETM")
	assert.Contains(t, out, "excursion")
	assert.Contains(t, out, "4 frames labelled")
}

func sampleReadouts() []schema.Readout {
	return []schema.Readout{{
		Frame: 2,
		Lines: []schema.ReadoutLine{
			{Column: "age", Value: 55.9, Available: true, Text: "age: 55.90"},
			{Column: "CO2", Value: math.NaN(), Text: "CO2: N/A"},
		},
	}, {
		Frame: 3,
		Lines: []schema.ReadoutLine{
			{Column: "age", Value: 55, Available: true, Text: "age: 55.00"},
			{Column: "CO2", Value: 1000, Available: true, Text: "CO2: 1000.00"},
		},
	}}
}

func TestWriteReadoutsCSV(t *testing.T) {
	var buf bytes.Buffer
	records := schema.FlattenReadouts(sampleReadouts())
	require.NoError(t, writeReadoutsCSV(&buf, records, createFormatters(2)))

	rows := readCSV(t, buf.String())
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"2", "CO2", "N/A", "CO2: N/A"}, rows[2])
	assert.Equal(t, []string{"3", "CO2", "1000.00", "CO2: 1000.00"}, rows[4])
}

func TestWriteReadoutBlocks(t *testing.T) {
	t.Run("single frame prints bare lines", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReadoutBlocks(&buf, sampleReadouts()[:1], testConfig(), time.Millisecond))
		assert.Equal(t, "age: 55.90\nCO2: N/A\n", buf.String())
	})

	t.Run("several frames get headings", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReadoutBlocks(&buf, sampleReadouts(), testConfig(), time.Millisecond))
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "Frame 2\nage: 55.90\nCO2: N/A\n\nFrame 3\n"))
		assert.Contains(t, out, "2 readouts")
	})
}

func TestWriteCorrelationCSV(t *testing.T) {
	var buf bytes.Buffer
	cells := schema.FlattenCorrelations(sampleCorrelation())
	require.NoError(t, writeCorrelationCSV(&buf, cells, createFormatters(-1)))

	rows := readCSV(t, buf.String())
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"0", "0", "3", "X", "Y", "-0.5", contract.ModerateValue}, rows[1])
	assert.Equal(t, []string{"1", "1", "4", "X", "Y", "N/A", contract.NoneValue}, rows[2])
}

func TestWriteCorrelationTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCorrelationTables(&buf, sampleCorrelation(), testConfig(), createFormatters(2), time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "Frame 0 (rows 0-2)")
	assert.Contains(t, out, "Frame 1 (rows 1-3)")
	assert.Contains(t, out, "-0.50")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "2 correlation frames")
}

func TestFormatCoefficient(t *testing.T) {
	cfg := testConfig()
	fmtFloat := createFormatters(2)
	assert.Equal(t, "0.75", formatCoefficient(0.75, cfg, fmtFloat))
	assert.Equal(t, "N/A", formatCoefficient(math.NaN(), cfg, fmtFloat))
}

func TestPrintCacheStatus(t *testing.T) {
	status := schema.CacheStatus{
		Backend:         "sqlite",
		Connected:       true,
		TotalEntries:    2,
		LastEntryTime:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local),
		OldestEntryTime: time.Date(2024, 4, 1, 10, 0, 0, 0, time.Local),
		TableSizeBytes:  4096,
	}

	var buf bytes.Buffer
	require.NoError(t, PrintCacheStatus(&buf, status, testConfig()))
	out := buf.String()
	assert.Contains(t, out, "Cache Backend: sqlite")
	assert.Contains(t, out, "Total Entries: 2")
	assert.Contains(t, out, "Last Entry: 2024-05-01 10:00:00")
	assert.Contains(t, out, "Table Size: 4096 bytes")

	buf.Reset()
	require.NoError(t, PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"}, testConfig()))
	assert.Equal(t, "Cache Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	cfg := testConfig()
	cfg.Output = schema.JSONOut
	require.NoError(t, PrintCacheStatus(&buf, status, cfg))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(2), decoded["total_entries"])
}

func TestPrintRenderSummary(t *testing.T) {
	cfg := testConfig()
	assert.Error(t, PrintRenderSummary(schema.RenderSummary{Dir: "frames"}, cfg, time.Second))
	assert.NoError(t, PrintRenderSummary(schema.RenderSummary{Dir: "frames", Frames: 60, Interval: time.Second}, cfg, time.Second))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 200
	assert.Equal(t, 40, getMaxTableNameWidth(cfg, 50))
	cfg.Width = 90
	assert.Equal(t, 20, getMaxTableNameWidth(cfg, 50))
	cfg.Width = 40
	assert.Equal(t, 10, getMaxTableNameWidth(cfg, 50))
}

func TestDispatchToFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.JSONOut
		cfg.OutputFile = filepath.Join(dir, "weights.json")
		require.NoError(t, PrintWeights(sampleWeights(), cfg, time.Millisecond))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var got []schema.WeightRecord
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, sampleWeights(), got)
	})

	t.Run("empty json is an array", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.JSONOut
		cfg.OutputFile = filepath.Join(dir, "corr.json")
		require.NoError(t, PrintCorrelations(nil, cfg, time.Millisecond))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("csv", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.CSVOut
		cfg.OutputFile = filepath.Join(dir, "epochs.csv")
		require.NoError(t, PrintEpochs(sampleEpochs(), cfg, time.Millisecond))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Len(t, readCSV(t, string(data)), 5)
	})

	t.Run("parquet", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.ParquetOut
		cfg.OutputFile = filepath.Join(dir, "readouts.parquet")
		require.NoError(t, PrintReadouts(sampleReadouts(), cfg, time.Millisecond))

		file, err := os.Open(cfg.OutputFile)
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		info, err := file.Stat()
		require.NoError(t, err)
		rows, err := pq.Read[parquet.ReadoutRow](file, info.Size())
		require.NoError(t, err)
		assert.Len(t, rows, 4)
		assert.Nil(t, rows[1].Value)
	})

	t.Run("table", func(t *testing.T) {
		cfg := testConfig()
		cfg.OutputFile = filepath.Join(dir, "corr.txt")
		require.NoError(t, PrintCorrelations(sampleCorrelation(), cfg, time.Millisecond))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Frame 1 (rows 1-3)")
	})

	t.Run("bad path", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.CSVOut
		cfg.OutputFile = filepath.Join(dir, "missing", "out.csv")
		assert.Error(t, PrintWeights(sampleWeights(), cfg, time.Millisecond))
	})
}
