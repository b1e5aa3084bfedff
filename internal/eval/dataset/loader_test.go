package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader(Options{})

	if loader.opts.GroundTruthDelimiter != '\t' {
		t.Errorf("Expected tab delimiter by default, got %q", loader.opts.GroundTruthDelimiter)
	}
}

func TestLoadEntered(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "person1.csv",
		"image_id,english_name,bangla_name,father_spouse_name,mother_name,dob,nid_no,plain_address\n"+
			"IMG_0001,Rahim Uddin,রহিম উদ্দিন,Karim Uddin,Rahima Begum,1990-01-02,6032068741.0,\"Dhaka, Mirpur\"\n"+
			",Jamal,,,,,1234567890,\n")

	loader := NewLoader(DefaultOptions())
	records, err := loader.LoadEntered(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, cell.Of("IMG_0001"), first.ImageID)
	assert.Equal(t, cell.Of("রহিম উদ্দিন"), first.BanglaName)
	assert.Equal(t, cell.Of("6032068741.0"), first.NIDNo)
	assert.Equal(t, cell.Of("Dhaka, Mirpur"), first.PlainAddress)
	assert.Equal(t, path, first.Source)
	assert.Equal(t, 1, first.Line)

	second := records[1]
	assert.False(t, second.ImageID.Valid, "empty cell should be absent")
	assert.False(t, second.PlainAddress.Valid, "trailing empty cell should be absent")
	assert.Equal(t, cell.Of("1234567890"), second.NIDNo)
	assert.Equal(t, 2, second.Line)
}

func TestLoadEnteredAbsentInput(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(DefaultOptions())

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.csv")},
		{"empty file", writeFile(t, dir, "empty.csv", "")},
		{"header only", writeFile(t, dir, "header.csv", "image_id,english_name\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := loader.LoadEntered(tt.path)
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestLoadEnteredMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "partial.csv", "image_id,nid_no\nIMG_1,42\n")

	records, err := NewLoader(DefaultOptions()).LoadEntered(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, cell.Of("42"), records[0].NIDNo)
	assert.False(t, records[0].EnglishName.Valid)
}

func TestLoadEnteredCustomColumnsAndNulls(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.csv", "\ufeffImage,NID\nNA,77\n")

	opts := DefaultOptions()
	opts.Entered.ImageID = "Image"
	opts.Entered.NIDNo = "NID"

	records, err := NewLoader(opts).LoadEntered(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].ImageID.Valid, "NA is a null token")
	assert.Equal(t, cell.Of("77"), records[0].NIDNo)

	opts.NullTokens = []string{""}
	records, err = NewLoader(opts).LoadEntered(path)
	require.NoError(t, err)
	assert.Equal(t, cell.Of("NA"), records[0].ImageID)
}

func TestLoadAllEntered(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "image_id\nA1\nA2\n")
	b := writeFile(t, dir, "b.csv", "image_id\nB1\n")

	records, err := NewLoader(DefaultOptions()).LoadAllEntered([]string{a, filepath.Join(dir, "missing.csv"), b})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "A1", records[0].ImageID.Text)
	assert.Equal(t, "B1", records[2].ImageID.Text)
	assert.Equal(t, b, records[2].Source)
}

func TestLoadGroundTruthTSV(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "truth.tsv",
		"front_image\tback_image\tname_english\tname_bangla\tfather_name\tmother_name\tdob\tnid_no\taddress\tdoc_date\n"+
			"data/front/IMG_0001.jpg\tdata/back/IMG_0002.jpg\tRahim Uddin\tরহিম\tKarim\tRahima\t02/01/1990\t6032068741\tDhaka\t2024-01-01\n"+
			"\t\tNo Images\t\t\t\t\t\t\t\n")

	records, err := NewLoader(DefaultOptions()).LoadGroundTruth(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	id, ok := records[0].FrontID()
	assert.True(t, ok)
	assert.Equal(t, "IMG_0001", id)
	id, ok = records[0].BackID()
	assert.True(t, ok)
	assert.Equal(t, "IMG_0002", id)
	assert.Equal(t, cell.Of("2024-01-01"), records[0].DocDate)

	_, ok = records[1].FrontID()
	assert.False(t, ok)
	assert.Equal(t, cell.Of("No Images"), records[1].NameEnglish)
}

func TestLoadGroundTruthParquet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truth.parquet")

	front := "front/IMG_9.jpg"
	name := "Rahim"
	rows := []groundTruthRow{
		{FrontImage: &front, NameEnglish: &name},
		{NameEnglish: &name},
	}
	require.NoError(t, parquet.WriteFile(path, rows))

	records, err := NewLoader(DefaultOptions()).LoadGroundTruth(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	id, ok := records[0].FrontID()
	assert.True(t, ok)
	assert.Equal(t, "IMG_9", id)
	assert.False(t, records[0].BackImage.Valid)
	assert.False(t, records[1].FrontImage.Valid)
	assert.Equal(t, 2, records[1].Line)
}

func TestWriteEntered(t *testing.T) {
	records := []EnteredRecord{
		{ImageID: cell.Of("IMG_1"), EnglishName: cell.Of("Rahim, Md")},
		{NIDNo: cell.Of("42")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEntered(&buf, DefaultEnteredColumns(), records))

	expected := "image_id,english_name,bangla_name,father_spouse_name,mother_name,dob,nid_no,plain_address\n" +
		"IMG_1,\"Rahim, Md\",,,,,,\n" +
		",,,,,,42,\n"
	assert.Equal(t, expected, buf.String())
}
