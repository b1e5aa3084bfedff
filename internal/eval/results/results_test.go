package results

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/dataset"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRun() *evaluator.Run {
	entered := []dataset.EnteredRecord{
		{
			ImageID:          cell.Of("IMG_0001"),
			EnglishName:      cell.Of("Rahim Udin"),
			BanglaName:       cell.Of("রহিম উদ্দিন"),
			FatherSpouseName: cell.Of("Karim, Uddin"),
			DOB:              cell.Of("1990/01/02"),
			NIDNo:            cell.Of("6032068741"),
			PlainAddress:     cell.Of("Mirpur, Dhaka"),
		},
		{NIDNo: cell.Of("1234567890")},
		{ImageID: cell.Of("IMG_NONE")},
	}
	gt := []dataset.GroundTruthRecord{
		{
			FrontImage:  cell.Of("front/IMG_0001.jpg"),
			NameEnglish: cell.Of("Rahim Uddin"),
			NameBangla:  cell.Of("রহিম উদ্দিন"),
			FatherName:  cell.Of("Karim Uddin"),
			MotherName:  cell.Of("Rahima"),
			DOB:         cell.Of("1990-01-02"),
			NIDNo:       cell.Of("6032068741.0"),
			Address:     cell.Of("Mirpur, Dhaka"),
			DocDate:     cell.Of("2024-01-01"),
		},
		{NIDNo: cell.Of("1234567890"), NameEnglish: cell.Of("Jamal")},
	}
	return evaluator.New().Evaluate(entered, gt)
}

func TestHeader(t *testing.T) {
	h := Header()
	require.Len(t, h, 1+7+7+1+21+3)
	assert.Equal(t, "image_id", h[0])
	assert.Equal(t, "actual_english_name", h[1])
	assert.Equal(t, "actual_address", h[7])
	assert.Equal(t, "predicted_english_name", h[8])
	assert.Equal(t, "predicted_doc_date", h[15])
	assert.Equal(t, []string{"english_name_accuracy", "english_name_cer", "english_name_wer"}, h[16:19])
	assert.Equal(t, []string{"address_accuracy", "address_cer", "address_wer"}, h[34:37])
	assert.Equal(t, []string{"overall_accuracy", "overall_cer", "overall_wer"}, h[37:])
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{100, "100.0"},
		{0, "0.0"},
		{95.24, "95.24"},
		{4.8, "4.8"},
		{66.67, "66.67"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatScore(tt.input))
	}
}

func TestWriteCSV(t *testing.T) {
	run := sampleRun()
	require.Len(t, run.Rows, 2)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, run.Rows))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Header(), ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `IMG_0001,Rahim Udin,রহিম উদ্দিন,"Karim, Uddin",,1990-01-02,6032068741,"Mirpur, Dhaka",`), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], ",,,,,,1234567890,,Jamal,"), lines[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(Header(), ",")+"\n", buf.String())
}

func TestWriteCSVDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, WriteCSV(&first, sampleRun().Rows))
	require.NoError(t, WriteCSV(&second, sampleRun().Rows))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestCSVRoundTrip(t *testing.T) {
	run := sampleRun()
	path := filepath.Join(t.TempDir(), "evaluation.csv")
	require.NoError(t, SaveCSV(path, run.Rows))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, len(run.Rows))

	for i := range rows {
		expected := run.Rows[i]
		expected.Method = ""
		assert.Equal(t, expected, rows[i])
	}
}

func TestReadCSVPartialColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.csv")
	require.NoError(t, os.WriteFile(path, []byte("overall_accuracy,image_id\n88.5,IMG_7\n"), 0644))

	rows, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "IMG_7", rows[0].ImageID)
	assert.Equal(t, 88.5, rows[0].Overall.Accuracy)

	require.NoError(t, os.WriteFile(path, []byte("overall_accuracy\nabc\n"), 0644))
	_, err = ReadCSV(path)
	assert.Error(t, err)
}

func TestSaveXLSX(t *testing.T) {
	run := sampleRun()
	path := filepath.Join(t.TempDir(), "evaluation.xlsx")
	require.NoError(t, SaveXLSX(path, run.Rows, summary.Summarize(run.Rows)))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	assert.Equal(t, []string{evaluationSheet, summarySheet}, wb.GetSheetList())

	rows, err := wb.GetRows(evaluationSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header(), rows[0])
	assert.Equal(t, "IMG_0001", rows[1][0])

	records, err := wb.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "2", records)
}

func TestParquetRoundTrip(t *testing.T) {
	run := sampleRun()
	path := filepath.Join(t.TempDir(), "evaluation.parquet")
	require.NoError(t, SaveParquet(path, run.Rows))

	rows, err := ReadParquet(path)
	require.NoError(t, err)
	require.Len(t, rows, len(run.Rows))
	for i := range rows {
		expected := run.Rows[i]
		expected.Method = ""
		assert.Equal(t, expected, rows[i])
	}
}

func TestSaveToYAML(t *testing.T) {
	run := sampleRun()
	dir := filepath.Join(t.TempDir(), "evals")

	m := NewManifest(ManifestConfig{
		Name:        "nightly",
		Entered:     []string{"person1.csv", "person2.csv"},
		GroundTruth: "truth.tsv",
		Output:      "evaluation.csv",
		Timestamp:   "2026-01-02_03-04-05",
	}, run, summary.Summarize(run.Rows))

	path, err := SaveToYAML(dir, m)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nightly-2026-01-02_03-04-05.yaml"), path)

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, run.Stats, loaded.Stats)
	require.Len(t, loaded.Results, 2)
	assert.Equal(t, "front_image_id", loaded.Results[0].Method)
	assert.Equal(t, 100.0, loaded.Results[0].FieldScores["bangla_name"])
	assert.Len(t, loaded.Unmatched, 1)
}
