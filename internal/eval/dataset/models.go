package dataset

import (
	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/lehigh-university-libraries/entryeval/internal/eval/normalize"
)

// EnteredRecord is one submission typed in by a data-entry operator.
type EnteredRecord struct {
	ImageID          cell.Value
	EnglishName      cell.Value
	BanglaName       cell.Value
	FatherSpouseName cell.Value
	MotherName       cell.Value
	DOB              cell.Value
	NIDNo            cell.Value
	PlainAddress     cell.Value

	// Where the record came from, for diagnostics only
	Source string
	Line   int
}

// GroundTruthRecord is one reference record. The two image columns hold
// file paths; their base names identify the record.
type GroundTruthRecord struct {
	FrontImage  cell.Value
	BackImage   cell.Value
	NameEnglish cell.Value
	NameBangla  cell.Value
	FatherName  cell.Value
	MotherName  cell.Value
	DOB         cell.Value
	NIDNo       cell.Value
	Address     cell.Value
	DocDate     cell.Value

	Line int
}

// FrontID returns the identifier derived from the front image path.
// ok is false when the path is absent.
func (r *GroundTruthRecord) FrontID() (id string, ok bool) {
	return imageID(r.FrontImage)
}

// BackID returns the identifier derived from the back image path.
func (r *GroundTruthRecord) BackID() (id string, ok bool) {
	return imageID(r.BackImage)
}

func imageID(path cell.Value) (string, bool) {
	if !path.Valid {
		return "", false
	}
	return normalize.ImageID(path.Text), true
}

// EnteredColumns names the header cells of an entered table.
type EnteredColumns struct {
	ImageID          string `yaml:"image_id"`
	EnglishName      string `yaml:"english_name"`
	BanglaName       string `yaml:"bangla_name"`
	FatherSpouseName string `yaml:"father_spouse_name"`
	MotherName       string `yaml:"mother_name"`
	DOB              string `yaml:"dob"`
	NIDNo            string `yaml:"nid_no"`
	PlainAddress     string `yaml:"plain_address"`
}

// DefaultEnteredColumns returns the header the data-entry forms write.
func DefaultEnteredColumns() EnteredColumns {
	return EnteredColumns{
		ImageID:          "image_id",
		EnglishName:      "english_name",
		BanglaName:       "bangla_name",
		FatherSpouseName: "father_spouse_name",
		MotherName:       "mother_name",
		DOB:              "dob",
		NIDNo:            "nid_no",
		PlainAddress:     "plain_address",
	}
}

// Names returns the column names in table order.
func (c EnteredColumns) Names() []string {
	return []string{
		c.ImageID, c.EnglishName, c.BanglaName, c.FatherSpouseName,
		c.MotherName, c.DOB, c.NIDNo, c.PlainAddress,
	}
}

func enteredCells(r *EnteredRecord) []*cell.Value {
	return []*cell.Value{
		&r.ImageID, &r.EnglishName, &r.BanglaName, &r.FatherSpouseName,
		&r.MotherName, &r.DOB, &r.NIDNo, &r.PlainAddress,
	}
}

// Values returns the record's cells in the same order as Names.
func (r *EnteredRecord) Values() []cell.Value {
	return []cell.Value{
		r.ImageID, r.EnglishName, r.BanglaName, r.FatherSpouseName,
		r.MotherName, r.DOB, r.NIDNo, r.PlainAddress,
	}
}

// GroundTruthColumns names the header cells of the ground-truth table.
type GroundTruthColumns struct {
	FrontImage  string `yaml:"front_image"`
	BackImage   string `yaml:"back_image"`
	NameEnglish string `yaml:"name_english"`
	NameBangla  string `yaml:"name_bangla"`
	FatherName  string `yaml:"father_name"`
	MotherName  string `yaml:"mother_name"`
	DOB         string `yaml:"dob"`
	NIDNo       string `yaml:"nid_no"`
	Address     string `yaml:"address"`
	DocDate     string `yaml:"doc_date"`
}

// DefaultGroundTruthColumns returns the header of the OCR export.
func DefaultGroundTruthColumns() GroundTruthColumns {
	return GroundTruthColumns{
		FrontImage:  "front_image",
		BackImage:   "back_image",
		NameEnglish: "name_english",
		NameBangla:  "name_bangla",
		FatherName:  "father_name",
		MotherName:  "mother_name",
		DOB:         "dob",
		NIDNo:       "nid_no",
		Address:     "address",
		DocDate:     "doc_date",
	}
}

// Names returns the column names in table order.
func (c GroundTruthColumns) Names() []string {
	return []string{
		c.FrontImage, c.BackImage, c.NameEnglish, c.NameBangla, c.FatherName,
		c.MotherName, c.DOB, c.NIDNo, c.Address, c.DocDate,
	}
}

func groundTruthCells(r *GroundTruthRecord) []*cell.Value {
	return []*cell.Value{
		&r.FrontImage, &r.BackImage, &r.NameEnglish, &r.NameBangla, &r.FatherName,
		&r.MotherName, &r.DOB, &r.NIDNo, &r.Address, &r.DocDate,
	}
}

// groundTruthRow is the parquet layout of a ground-truth export. Nil
// pointers are null cells.
type groundTruthRow struct {
	FrontImage  *string `parquet:"front_image,optional"`
	BackImage   *string `parquet:"back_image,optional"`
	NameEnglish *string `parquet:"name_english,optional"`
	NameBangla  *string `parquet:"name_bangla,optional"`
	FatherName  *string `parquet:"father_name,optional"`
	MotherName  *string `parquet:"mother_name,optional"`
	DOB         *string `parquet:"dob,optional"`
	NIDNo       *string `parquet:"nid_no,optional"`
	Address     *string `parquet:"address,optional"`
	DocDate     *string `parquet:"doc_date,optional"`
}

func (p *groundTruthRow) record(line int) GroundTruthRecord {
	return GroundTruthRecord{
		FrontImage:  fromPtr(p.FrontImage),
		BackImage:   fromPtr(p.BackImage),
		NameEnglish: fromPtr(p.NameEnglish),
		NameBangla:  fromPtr(p.NameBangla),
		FatherName:  fromPtr(p.FatherName),
		MotherName:  fromPtr(p.MotherName),
		DOB:         fromPtr(p.DOB),
		NIDNo:       fromPtr(p.NIDNo),
		Address:     fromPtr(p.Address),
		DocDate:     fromPtr(p.DocDate),
		Line:        line,
	}
}

func fromPtr(s *string) cell.Value {
	if s == nil {
		return cell.Null
	}
	return cell.Of(*s)
}
