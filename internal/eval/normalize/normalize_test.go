package normalize

import (
	"testing"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/cell"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"trims and collapses whitespace", "  Md.   Rahim \t Uddin\n", "Md. Rahim Uddin"},
		{"keeps case", "MD RAHIM", "MD RAHIM"},
		{"danda becomes period", "রহিম।", "রহিম."},
		{"double danda becomes period", "রহিম॥", "রহিম."},
		{"devanagari consonants", "कमल", "কমল"},
		{"devanagari vowel signs", "रानी", "রানী"},
		{"devanagari va folds to ba", "देव", "দেব"},
		{"virama after vowel sign dropped", "কা্জ", "কাজ"},
		{"leading virama dropped", "্কমল", "কমল"},
		{"virama after consonant kept", "ক্ষ", "ক্ষ"},
		{"run of stray viramas dropped", "কা্্জ", "কাজ"},
		{"decomposed o sign composes", "ক\u09c7\u09be", "ক\u09cb"},
		{"unmapped characters pass through", "Rahim 123 !", "Rahim 123 !"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := String(tt.input)
			if result != tt.expected {
				t.Errorf("String(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestStringIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  মোঃ   আব্দুল   করিম ",
		"कमल।  देवी॥",
		"্ ্ক",
		"কা ্জ",
		"ক\u09c7\u09cd\u09be",
		"ক\u09c7\u09cd\u09d7\u09cd",
		"ক্্",
		"কো্",
		"Mixed রহিम text here",
	}

	for _, in := range inputs {
		once := String(in)
		assert.Equal(t, once, String(once), "input %q", in)
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(cell.Null))
	assert.Equal(t, "", Text(cell.Of("   ")))
	assert.Equal(t, "করিম", Text(cell.Of(" করিম ")))
}

func TestTransliterationCoversTable(t *testing.T) {
	for dev, ben := range devanagariToBengali {
		got := transliterate(string(dev))
		assert.Equal(t, string(ben), got, "U+%04X", dev)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name     string
		input    cell.Value
		expected string
	}{
		{"absent", cell.Null, ""},
		{"empty", cell.Of(""), ""},
		{"already iso", cell.Of("2001-11-21"), "2001-11-21"},
		{"iso with surrounding space", cell.Of(" 2001-11-21 "), "2001-11-21"},
		{"compact", cell.Of("20011121"), "2001-11-21"},
		{"slashes", cell.Of("2001/11/21"), "2001-11-21"},
		{"spaces", cell.Of("2001 11 21"), "2001-11-21"},
		{"single digit month and day", cell.Of("2001/1/5"), "2001-01-05"},
		{"day month year", cell.Of("21/11/2001"), "2001-11-21"},
		{"day month year dashes", cell.Of("21-11-2001"), "2001-11-21"},
		{"repeated separators", cell.Of("2001//11--21"), "2001-11-21"},
		{"iso shape is trusted", cell.Of("2001-13-45"), "2001-13-45"},
		{"invalid calendar date kept", cell.Of("31/02/2001"), "31/02/2001"},
		{"free text kept", cell.Of(" unknown "), "unknown"},
		{"leap day", cell.Of("29/02/2000"), "2000-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Date(tt.input))
		})
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		name     string
		input    cell.Value
		expected string
	}{
		{"absent", cell.Null, ""},
		{"float suffix", cell.Of("6032068741.0"), "6032068741"},
		{"spaces", cell.Of("6032 0687 41"), "6032068741"},
		{"dashes", cell.Of("603-206-8741"), "6032068741"},
		{"no digits", cell.Of("n/a"), ""},
		{"truncates at first period", cell.Of("12.34.56"), "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ID(tt.input))
		})
	}

	assert.Equal(t, ID(cell.Of("6032068741.0")), ID(cell.Of("6032 0687 41")))
}

func TestImageID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"images/front/IMG_0001.jpg", "IMG_0001"},
		{"/data/back/IMG_0002.jpg", "IMG_0002"},
		{"IMG_0003.jpg", "IMG_0003"},
		{"IMG_0004", "IMG_0004"},
		{"scans/IMG_0005.png", "IMG_0005.png"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ImageID(tt.input))
		})
	}
}
