package results

import (
	"fmt"
	"os"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/evaluator"
	"github.com/parquet-go/parquet-go"
)

// parquetRow is the Parquet layout of the evaluation table. Column names
// match Header.
type parquetRow struct {
	ImageID               string  `parquet:"image_id"`
	ActualEnglishName     string  `parquet:"actual_english_name"`
	ActualBanglaName      string  `parquet:"actual_bangla_name"`
	ActualFatherSpouse    string  `parquet:"actual_father_spouse"`
	ActualMother          string  `parquet:"actual_mother"`
	ActualDOB             string  `parquet:"actual_dob"`
	ActualNIDNo           string  `parquet:"actual_nid_no"`
	ActualAddress         string  `parquet:"actual_address"`
	PredictedEnglishName  string  `parquet:"predicted_english_name"`
	PredictedBanglaName   string  `parquet:"predicted_bangla_name"`
	PredictedFatherSpouse string  `parquet:"predicted_father_spouse"`
	PredictedMother       string  `parquet:"predicted_mother"`
	PredictedDOB          string  `parquet:"predicted_dob"`
	PredictedNIDNo        string  `parquet:"predicted_nid_no"`
	PredictedAddress      string  `parquet:"predicted_address"`
	PredictedDocDate      string  `parquet:"predicted_doc_date"`
	EnglishNameAccuracy   float64 `parquet:"english_name_accuracy"`
	EnglishNameCER        float64 `parquet:"english_name_cer"`
	EnglishNameWER        float64 `parquet:"english_name_wer"`
	BanglaNameAccuracy    float64 `parquet:"bangla_name_accuracy"`
	BanglaNameCER         float64 `parquet:"bangla_name_cer"`
	BanglaNameWER         float64 `parquet:"bangla_name_wer"`
	FatherSpouseAccuracy  float64 `parquet:"father_spouse_accuracy"`
	FatherSpouseCER       float64 `parquet:"father_spouse_cer"`
	FatherSpouseWER       float64 `parquet:"father_spouse_wer"`
	MotherAccuracy        float64 `parquet:"mother_accuracy"`
	MotherCER             float64 `parquet:"mother_cer"`
	MotherWER             float64 `parquet:"mother_wer"`
	DOBAccuracy           float64 `parquet:"dob_accuracy"`
	DOBCER                float64 `parquet:"dob_cer"`
	DOBWER                float64 `parquet:"dob_wer"`
	NIDNoAccuracy         float64 `parquet:"nid_no_accuracy"`
	NIDNoCER              float64 `parquet:"nid_no_cer"`
	NIDNoWER              float64 `parquet:"nid_no_wer"`
	AddressAccuracy       float64 `parquet:"address_accuracy"`
	AddressCER            float64 `parquet:"address_cer"`
	AddressWER            float64 `parquet:"address_wer"`
	OverallAccuracy       float64 `parquet:"overall_accuracy"`
	OverallCER            float64 `parquet:"overall_cer"`
	OverallWER            float64 `parquet:"overall_wer"`
}

func toParquetRow(r *evaluator.Row) parquetRow {
	return parquetRow{
		ImageID:               r.ImageID,
		ActualEnglishName:     r.Actual[0],
		ActualBanglaName:      r.Actual[1],
		ActualFatherSpouse:    r.Actual[2],
		ActualMother:          r.Actual[3],
		ActualDOB:             r.Actual[4],
		ActualNIDNo:           r.Actual[5],
		ActualAddress:         r.Actual[6],
		PredictedEnglishName:  r.Predicted[0],
		PredictedBanglaName:   r.Predicted[1],
		PredictedFatherSpouse: r.Predicted[2],
		PredictedMother:       r.Predicted[3],
		PredictedDOB:          r.Predicted[4],
		PredictedNIDNo:        r.Predicted[5],
		PredictedAddress:      r.Predicted[6],
		PredictedDocDate:      r.PredictedDocDate,
		EnglishNameAccuracy:   r.Scores[0].Accuracy,
		EnglishNameCER:        r.Scores[0].CER,
		EnglishNameWER:        r.Scores[0].WER,
		BanglaNameAccuracy:    r.Scores[1].Accuracy,
		BanglaNameCER:         r.Scores[1].CER,
		BanglaNameWER:         r.Scores[1].WER,
		FatherSpouseAccuracy:  r.Scores[2].Accuracy,
		FatherSpouseCER:       r.Scores[2].CER,
		FatherSpouseWER:       r.Scores[2].WER,
		MotherAccuracy:        r.Scores[3].Accuracy,
		MotherCER:             r.Scores[3].CER,
		MotherWER:             r.Scores[3].WER,
		DOBAccuracy:           r.Scores[4].Accuracy,
		DOBCER:                r.Scores[4].CER,
		DOBWER:                r.Scores[4].WER,
		NIDNoAccuracy:         r.Scores[5].Accuracy,
		NIDNoCER:              r.Scores[5].CER,
		NIDNoWER:              r.Scores[5].WER,
		AddressAccuracy:       r.Scores[6].Accuracy,
		AddressCER:            r.Scores[6].CER,
		AddressWER:            r.Scores[6].WER,
		OverallAccuracy:       r.Overall.Accuracy,
		OverallCER:            r.Overall.CER,
		OverallWER:            r.Overall.WER,
	}
}

// SaveParquet writes the evaluation table as a Parquet file.
func SaveParquet(path string, rows []evaluator.Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[parquetRow](file)
	batch := make([]parquetRow, 0, len(rows))
	for i := range rows {
		batch = append(batch, toParquetRow(&rows[i]))
	}
	if _, err := writer.Write(batch); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return file.Close()
}

// ReadParquet reads an evaluation table written by SaveParquet.
func ReadParquet(path string) ([]evaluator.Row, error) {
	pr, err := parquet.ReadFile[parquetRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}

	rows := make([]evaluator.Row, len(pr))
	for i, p := range pr {
		rows[i] = p.row()
	}
	return rows, nil
}

func (p parquetRow) row() evaluator.Row {
	return evaluator.Row{
		ImageID:          p.ImageID,
		Actual:           [evaluator.NumFields]string{p.ActualEnglishName, p.ActualBanglaName, p.ActualFatherSpouse, p.ActualMother, p.ActualDOB, p.ActualNIDNo, p.ActualAddress},
		Predicted:        [evaluator.NumFields]string{p.PredictedEnglishName, p.PredictedBanglaName, p.PredictedFatherSpouse, p.PredictedMother, p.PredictedDOB, p.PredictedNIDNo, p.PredictedAddress},
		PredictedDocDate: p.PredictedDocDate,
		Scores: [evaluator.NumFields]evaluator.FieldScore{
			{Accuracy: p.EnglishNameAccuracy, CER: p.EnglishNameCER, WER: p.EnglishNameWER},
			{Accuracy: p.BanglaNameAccuracy, CER: p.BanglaNameCER, WER: p.BanglaNameWER},
			{Accuracy: p.FatherSpouseAccuracy, CER: p.FatherSpouseCER, WER: p.FatherSpouseWER},
			{Accuracy: p.MotherAccuracy, CER: p.MotherCER, WER: p.MotherWER},
			{Accuracy: p.DOBAccuracy, CER: p.DOBCER, WER: p.DOBWER},
			{Accuracy: p.NIDNoAccuracy, CER: p.NIDNoCER, WER: p.NIDNoWER},
			{Accuracy: p.AddressAccuracy, CER: p.AddressCER, WER: p.AddressWER},
		},
		Overall: evaluator.FieldScore{Accuracy: p.OverallAccuracy, CER: p.OverallCER, WER: p.OverallWER},
	}
}
