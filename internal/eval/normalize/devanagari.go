package normalize

import "strings"

// devanagariToBengali maps Devanagari code points onto the Bengali code
// point that occupies the same slot in the Brahmic layout. Data entry done
// on a Hindi keyboard looks right on screen but compares as a different
// script, so these are folded before any comparison.
var devanagariToBengali = map[rune]rune{
	// Consonants
	'क': 'ক',
	'ख': 'খ',
	'ग': 'গ',
	'घ': 'ঘ',
	'ङ': 'ঙ',
	'च': 'চ',
	'छ': 'ছ',
	'ज': 'জ',
	'झ': 'ঝ',
	'ञ': 'ঞ',
	'ट': 'ট',
	'ठ': 'ঠ',
	'ड': 'ড',
	'ढ': 'ঢ',
	'ण': 'ণ',
	'त': 'ত',
	'थ': 'থ',
	'द': 'দ',
	'ध': 'ধ',
	'न': 'ন',
	'प': 'প',
	'फ': 'ফ',
	'ब': 'ব',
	'भ': 'ভ',
	'म': 'ম',
	'य': 'য',
	'र': 'র',
	'ल': 'ল',
	'व': 'ব', // Bengali has no separate va
	'श': 'শ',
	'ष': 'ষ',
	'स': 'স',
	'ह': 'হ',

	// Independent vowels
	'अ': 'অ',
	'आ': 'আ',
	'इ': 'ই',
	'ई': 'ঈ',
	'उ': 'উ',
	'ऊ': 'ঊ',
	'ऋ': 'ঋ',
	'ए': 'এ',
	'ऐ': 'ঐ',
	'ओ': 'ও',
	'औ': 'ঔ',

	// Dependent vowel signs
	'\u093E': '\u09BE', // ◌ा -> ◌া
	'\u093F': '\u09BF', // ◌ि -> ◌ি
	'\u0940': '\u09C0', // ◌ी -> ◌ী
	'\u0941': '\u09C1', // ◌ु -> ◌ু
	'\u0942': '\u09C2', // ◌ू -> ◌ূ
	'\u0943': '\u09C3', // ◌ृ -> ◌ৃ
	'\u0947': '\u09C7', // ◌े -> ◌ে
	'\u0948': '\u09C8', // ◌ै -> ◌ৈ
	'\u094B': '\u09CB', // ◌ो -> ◌ো
	'\u094C': '\u09CC', // ◌ौ -> ◌ৌ

	// Signs
	'\u094D': '\u09CD', // virama
	'\u0901': '\u0981', // candrabindu
	'\u0902': '\u0982', // anusvara
	'\u0903': '\u0983', // visarga
	'\u093C': '\u09BC', // nukta
	'\u0950': '\u0980', // om -> anji
}

// dandaReplacer turns the Devanagari sentence terminators into periods.
var dandaReplacer = strings.NewReplacer("\u0964", ".", "\u0965", ".")

func transliterate(s string) string {
	return strings.Map(func(r rune) rune {
		if b, ok := devanagariToBengali[r]; ok {
			return b
		}
		return r
	}, s)
}
