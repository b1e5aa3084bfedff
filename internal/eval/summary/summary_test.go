package summary

import (
	"bytes"
	"testing"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id string, overall float64, fieldAcc ...float64) evaluator.Row {
	r := evaluator.Row{ImageID: id, Overall: evaluator.FieldScore{Accuracy: overall, CER: 100 - overall}}
	for i := range r.Scores {
		acc := overall
		if i < len(fieldAcc) {
			acc = fieldAcc[i]
		}
		r.Scores[i] = evaluator.FieldScore{Accuracy: acc, CER: 100 - acc}
	}
	return r
}

func TestTier(t *testing.T) {
	tests := []struct {
		accuracy float64
		expected string
	}{
		{100, Excellent},
		{95, Excellent},
		{94.99, Good},
		{80, Good},
		{79.99, Fair},
		{60, Fair},
		{59.99, Poor},
		{0, Poor},
	}

	for _, tt := range tests {
		if got := Tier(tt.accuracy); got != tt.expected {
			t.Errorf("Tier(%v) = %s, expected %s", tt.accuracy, got, tt.expected)
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Records)
	assert.Equal(t, Stat{}, s.Accuracy)
	assert.Len(t, s.Fields, evaluator.NumFields)
	for _, b := range s.Buckets {
		assert.Equal(t, 0, b.Count)
		assert.Equal(t, 0.0, b.Percent)
	}
	assert.Empty(t, s.Top)
	assert.Contains(t, s.Quality, "NO DATA")
}

func TestSummarize(t *testing.T) {
	rows := []evaluator.Row{
		row("IMG_1", 100),
		row("IMG_2", 96),
		row("IMG_3", 85, 50),
		row("IMG_4", 40),
	}

	s := Summarize(rows)

	assert.Equal(t, 4, s.Records)
	assert.InDelta(t, 80.25, s.Accuracy.Mean, 1e-9)
	assert.Equal(t, 40.0, s.Accuracy.Min)
	assert.Equal(t, 100.0, s.Accuracy.Max)

	// 100 falls outside every half-open bucket
	counts := []int{}
	for _, b := range s.Buckets {
		counts = append(counts, b.Count)
	}
	assert.Equal(t, []int{1, 1, 0, 0, 0, 1}, counts)

	assert.Equal(t, []TierCount{
		{Tier: Excellent, Count: 2, Percent: 50},
		{Tier: Good, Count: 1, Percent: 25},
		{Tier: Fair, Count: 0, Percent: 0},
		{Tier: Poor, Count: 1, Percent: 25},
	}, s.Tiers)
	assert.Equal(t, 75.0, s.Acceptable)
	assert.Contains(t, s.Quality, "GOOD")

	english := s.Fields[0]
	assert.Equal(t, evaluator.EnglishName, english.Field)
	assert.Equal(t, "English Name", english.Label)
	assert.InDelta(t, 71.5, english.Accuracy.Mean, 1e-9)
	assert.Equal(t, Fair, english.Tier)
	assert.InDelta(t, 28.5, english.CER, 1e-9)
	assert.Greater(t, english.Accuracy.StdDev, 0.0)

	// english name has the lowest mean, the rest tie and keep field order
	require.Len(t, s.Ranked, evaluator.NumFields)
	assert.Equal(t, evaluator.BanglaName, s.Ranked[0].Field)
	assert.Equal(t, evaluator.EnglishName, s.Ranked[evaluator.NumFields-1].Field)

	require.Len(t, s.Top, 4)
	assert.Equal(t, "IMG_1", s.Top[0].ImageID)
	assert.Equal(t, "IMG_4", s.Bottom[0].ImageID)
}

func TestDescribeStdDev(t *testing.T) {
	st := describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, st.Mean, 1e-9)
	assert.InDelta(t, 2.13809, st.StdDev, 1e-5)

	single := describe([]float64{42})
	assert.Equal(t, Stat{Mean: 42, Min: 42, Max: 42}, single)
}

func TestVerdict(t *testing.T) {
	assert.Contains(t, verdict(9, 10), "EXCELLENT")
	assert.Contains(t, verdict(8, 10), "GOOD")
	assert.Contains(t, verdict(6, 10), "FAIR")
	assert.Contains(t, verdict(5, 10), "POOR")
}

func TestPrint(t *testing.T) {
	s := Summarize([]evaluator.Row{row("IMG_1", 100), row("IMG_2", 55)})

	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()

	assert.Contains(t, out, "Total Records Evaluated:          2 records")
	assert.Contains(t, out, "PER-FIELD ANALYSIS (RANKED BY ACCURACY)")
	assert.Contains(t, out, "DATE OF BIRTH")
	assert.Contains(t, out, "IMG_2")

	buf.Reset()
	Summarize(nil).Print(&buf)
	assert.Contains(t, buf.String(), "No evaluated records")
}
