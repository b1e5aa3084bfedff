package cell

// Value is a table cell that may be absent.
// Absent and empty are different: an absent cell never reached the table,
// an empty one was recorded as "" by a normalizer.
type Value struct {
	Text  string
	Valid bool
}

// Null is the absent value.
var Null = Value{}

// Of returns a present value holding s.
func Of(s string) Value {
	return Value{Text: s, Valid: true}
}

// String returns the text, or "" when absent.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return v.Text
}

// Parse turns a raw cell into a Value, treating any of nullTokens as absent.
func Parse(raw string, nullTokens []string) Value {
	for _, tok := range nullTokens {
		if raw == tok {
			return Null
		}
	}
	return Of(raw)
}

// DefaultNullTokens are the NA markers spreadsheet and dataframe exports use.
var DefaultNullTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}
