// Package summary aggregates evaluation rows into the statistics the
// reports print.
package summary

import (
	"math"
	"sort"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
)

// Labels are the display names of the compared fields.
var Labels = map[evaluator.Field]string{
	evaluator.EnglishName:  "English Name",
	evaluator.BanglaName:   "Bangla Name",
	evaluator.FatherSpouse: "Father/Spouse",
	evaluator.Mother:       "Mother",
	evaluator.DOB:          "Date of Birth",
	evaluator.NIDNo:        "NID Number",
	evaluator.Address:      "Address",
}

// Quality tiers for an accuracy percentage.
const (
	Excellent = "Excellent"
	Good      = "Good"
	Fair      = "Fair"
	Poor      = "Poor"
)

// Tier labels an accuracy percentage.
func Tier(accuracy float64) string {
	switch {
	case accuracy >= 95:
		return Excellent
	case accuracy >= 80:
		return Good
	case accuracy >= 60:
		return Fair
	default:
		return Poor
	}
}

// Stat describes one column of scores.
type Stat struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
}

// FieldSummary aggregates one field across all rows.
type FieldSummary struct {
	Field    evaluator.Field `json:"field" yaml:"field"`
	Label    string          `json:"label" yaml:"label"`
	Accuracy Stat            `json:"accuracy" yaml:"accuracy"`
	CER      float64         `json:"cer" yaml:"cer"`
	WER      float64         `json:"wer" yaml:"wer"`
	Tier     string          `json:"tier" yaml:"tier"`
}

// Bucket counts rows whose overall accuracy lies in [Lower, Upper).
type Bucket struct {
	Lower   float64 `json:"lower" yaml:"lower"`
	Upper   float64 `json:"upper" yaml:"upper"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// TierCount counts rows in one quality tier.
type TierCount struct {
	Tier    string  `json:"tier" yaml:"tier"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// RecordScore is the overall score of one row.
type RecordScore struct {
	ImageID string               `json:"image_id" yaml:"image_id"`
	Overall evaluator.FieldScore `json:"overall" yaml:"overall"`
}

// Summary holds run-wide statistics.
type Summary struct {
	Records  int  `json:"records" yaml:"records"`
	Accuracy Stat `json:"accuracy" yaml:"accuracy"`
	CER      Stat `json:"cer" yaml:"cer"`
	WER      Stat `json:"wer" yaml:"wer"`

	// Fields is in output order; Ranked is by mean accuracy, best first.
	Fields []FieldSummary `json:"fields" yaml:"fields"`
	Ranked []FieldSummary `json:"-" yaml:"-"`

	Buckets []Bucket    `json:"buckets" yaml:"buckets"`
	Tiers   []TierCount `json:"tiers" yaml:"tiers"`

	// Acceptable is the percentage of rows rated Excellent or Good.
	Acceptable float64 `json:"acceptable" yaml:"acceptable"`
	Quality    string  `json:"quality" yaml:"quality"`

	Top    []RecordScore `json:"top" yaml:"top"`
	Bottom []RecordScore `json:"bottom" yaml:"bottom"`
}

var bucketBounds = [][2]float64{{90, 100}, {80, 90}, {70, 80}, {60, 70}, {50, 60}, {0, 50}}

// rankedRecords is how many rows the top and bottom lists hold.
const rankedRecords = 10

// Summarize aggregates rows. No rows gives a zero Summary with empty
// buckets and tiers.
func Summarize(rows []evaluator.Row) *Summary {
	s := &Summary{Records: len(rows)}

	overall := make([][]float64, 3)
	for _, r := range rows {
		overall[0] = append(overall[0], r.Overall.Accuracy)
		overall[1] = append(overall[1], r.Overall.CER)
		overall[2] = append(overall[2], r.Overall.WER)
	}
	s.Accuracy = describe(overall[0])
	s.CER = describe(overall[1])
	s.WER = describe(overall[2])

	for i, f := range evaluator.Fields {
		acc := make([]float64, 0, len(rows))
		cer := make([]float64, 0, len(rows))
		wer := make([]float64, 0, len(rows))
		for _, r := range rows {
			acc = append(acc, r.Scores[i].Accuracy)
			cer = append(cer, r.Scores[i].CER)
			wer = append(wer, r.Scores[i].WER)
		}
		fs := FieldSummary{
			Field:    f,
			Label:    Labels[f],
			Accuracy: describe(acc),
			CER:      mean(cer),
			WER:      mean(wer),
		}
		fs.Tier = Tier(fs.Accuracy.Mean)
		s.Fields = append(s.Fields, fs)
	}
	s.Ranked = append([]FieldSummary(nil), s.Fields...)
	sort.SliceStable(s.Ranked, func(i, j int) bool {
		return s.Ranked[i].Accuracy.Mean > s.Ranked[j].Accuracy.Mean
	})

	for _, b := range bucketBounds {
		bucket := Bucket{Lower: b[0], Upper: b[1]}
		for _, acc := range overall[0] {
			if acc >= b[0] && acc < b[1] {
				bucket.Count++
			}
		}
		bucket.Percent = percent(bucket.Count, len(rows))
		s.Buckets = append(s.Buckets, bucket)
	}

	counts := map[string]int{}
	for _, acc := range overall[0] {
		counts[Tier(acc)]++
	}
	for _, tier := range []string{Excellent, Good, Fair, Poor} {
		s.Tiers = append(s.Tiers, TierCount{Tier: tier, Count: counts[tier], Percent: percent(counts[tier], len(rows))})
	}

	acceptable := counts[Excellent] + counts[Good]
	s.Acceptable = percent(acceptable, len(rows))
	s.Quality = verdict(acceptable, len(rows))

	s.Top, s.Bottom = extremes(rows)
	return s
}

// verdict rates the run from the number of acceptable rows.
func verdict(acceptable, total int) string {
	share := float64(acceptable)
	n := float64(total)
	switch {
	case total == 0:
		return "NO DATA - Nothing has been evaluated"
	case share >= n*0.9:
		return "EXCELLENT - Data entry quality is very high"
	case share >= n*0.75:
		return "GOOD - Data entry quality is satisfactory"
	case share >= n*0.6:
		return "FAIR - Data entry quality needs improvement"
	default:
		return "POOR - Data entry quality requires attention"
	}
}

// extremes returns the best and worst rows by overall accuracy. Ties keep
// row order.
func extremes(rows []evaluator.Row) (top, bottom []RecordScore) {
	scores := make([]RecordScore, len(rows))
	for i, r := range rows {
		scores[i] = RecordScore{ImageID: r.ImageID, Overall: r.Overall}
	}

	best := append([]RecordScore(nil), scores...)
	sort.SliceStable(best, func(i, j int) bool { return best[i].Overall.Accuracy > best[j].Overall.Accuracy })
	worst := append([]RecordScore(nil), scores...)
	sort.SliceStable(worst, func(i, j int) bool { return worst[i].Overall.Accuracy < worst[j].Overall.Accuracy })

	return best[:min(rankedRecords, len(best))], worst[:min(rankedRecords, len(worst))]
}

func describe(values []float64) Stat {
	if len(values) == 0 {
		return Stat{}
	}

	st := Stat{Mean: mean(values), Min: values[0], Max: values[0]}
	for _, v := range values {
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	if len(values) > 1 {
		var ss float64
		for _, v := range values {
			ss += (v - st.Mean) * (v - st.Mean)
		}
		st.StdDev = math.Sqrt(ss / float64(len(values)-1))
	}
	return st
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
