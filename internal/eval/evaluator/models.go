package evaluator

import (
	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/dataset"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/matcher"
)

// Field is the key of one of the seven compared fields.
type Field string

const (
	EnglishName  Field = "english_name"
	BanglaName   Field = "bangla_name"
	FatherSpouse Field = "father_spouse"
	Mother       Field = "mother"
	DOB          Field = "dob"
	NIDNo        Field = "nid_no"
	Address      Field = "address"
)

// NumFields is the number of compared fields.
const NumFields = 7

// Fields lists the compared fields in output order.
var Fields = [NumFields]Field{EnglishName, BanglaName, FatherSpouse, Mother, DOB, NIDNo, Address}

// FieldScore holds the three scores for one field of one pair, each a
// percentage rounded to two decimals.
type FieldScore struct {
	Accuracy float64 `json:"accuracy" yaml:"accuracy"`
	CER      float64 `json:"cer" yaml:"cer"`
	WER      float64 `json:"wer" yaml:"wer"`
}

// Row is one evaluated pair. Actual holds the entered side, Predicted the
// ground-truth side, both in Fields order.
type Row struct {
	ImageID          string                `json:"image_id"`
	Method           matcher.Method        `json:"match_method,omitempty"`
	Actual           [NumFields]string     `json:"actual"`
	Predicted        [NumFields]string     `json:"predicted"`
	PredictedDocDate string                `json:"predicted_doc_date"`
	Scores           [NumFields]FieldScore `json:"scores"`
	Overall          FieldScore            `json:"overall"`
}

// Score returns the scores of field f.
func (r *Row) Score(f Field) FieldScore {
	return r.Scores[fieldIndex(f)]
}

func fieldIndex(f Field) int {
	for i, name := range Fields {
		if name == f {
			return i
		}
	}
	panic("evaluator: unknown field " + string(f))
}

// Stats counts how the entered records fared.
type Stats struct {
	Total     int                    `json:"total" yaml:"total"`
	Matched   int                    `json:"matched" yaml:"matched"`
	Unmatched int                    `json:"unmatched" yaml:"unmatched"`
	MatchRate float64                `json:"match_rate" yaml:"match_rate"`
	ByMethod  map[matcher.Method]int `json:"by_method" yaml:"by_method"`
}

// Unmatched identifies an entered record that found no ground truth.
type Unmatched struct {
	Source  string `json:"source" yaml:"source"`
	Line    int    `json:"line" yaml:"line"`
	ImageID string `json:"image_id" yaml:"image_id"`
	NIDNo   string `json:"nid_no" yaml:"nid_no"`
}

func unmatchedFrom(r *dataset.EnteredRecord) Unmatched {
	return Unmatched{
		Source:  r.Source,
		Line:    r.Line,
		ImageID: r.ImageID.String(),
		NIDNo:   r.NIDNo.String(),
	}
}

// Diagnostic explains a run in which nothing matched.
type Diagnostic struct {
	Total           int      `json:"total" yaml:"total"`
	GroundTruthRows int      `json:"ground_truth_rows" yaml:"ground_truth_rows"`
	Reasons         []string `json:"reasons" yaml:"reasons"`
}

// ZeroMatchReasons are the usual causes of a run with no matches.
var ZeroMatchReasons = []string{
	"Image IDs don't match between datasets",
	"NID numbers are different or missing",
	"No data has been entered yet",
}

// Run is the result of one evaluation.
type Run struct {
	Rows       []Row       `json:"rows"`
	Stats      Stats       `json:"stats"`
	Unmatched  []Unmatched `json:"unmatched"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

// fieldSpec binds a field to its cells on both sides. canon, when set,
// replaces both values before scoring and is what the row stores.
type fieldSpec struct {
	field     Field
	entered   func(*dataset.EnteredRecord) cell.Value
	reference func(*dataset.GroundTruthRecord) cell.Value
	canon     func(cell.Value) string
}
