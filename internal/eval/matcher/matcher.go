// Package matcher links entered records to ground-truth records.
package matcher

import (
	"strings"

	"github.com/lehigh-university-libraries/entryeval/internal/eval/dataset"
)

// Method records which rule produced a match.
type Method string

const (
	FrontImageID Method = "front_image_id"
	BackImageID  Method = "back_image_id"
	NIDNumber    Method = "nid_number"
)

// Methods lists every match method in priority order.
var Methods = []Method{FrontImageID, BackImageID, NIDNumber}

// Pair is an entered record and the ground-truth record it matched.
type Pair struct {
	Entered     dataset.EnteredRecord
	GroundTruth dataset.GroundTruthRecord
	Method      Method
}

// Index holds lookups over one ground-truth table. Each key maps to the
// first row that produced it.
type Index struct {
	records []dataset.GroundTruthRecord
	byFront map[string]int
	byBack  map[string]int
	byNID   map[string]int
}

// New indexes gt. The slice must not be modified while the index is in use.
func New(gt []dataset.GroundTruthRecord) *Index {
	idx := &Index{
		records: gt,
		byFront: make(map[string]int, len(gt)),
		byBack:  make(map[string]int, len(gt)),
		byNID:   make(map[string]int, len(gt)),
	}

	for i := range gt {
		if id, ok := gt[i].FrontID(); ok {
			addFirst(idx.byFront, id, i)
		}
		if id, ok := gt[i].BackID(); ok {
			addFirst(idx.byBack, id, i)
		}
		if gt[i].NIDNo.Valid {
			addFirst(idx.byNID, nidKey(gt[i].NIDNo.Text), i)
		}
	}
	return idx
}

func addFirst(m map[string]int, key string, pos int) {
	if _, seen := m[key]; !seen {
		m[key] = pos
	}
}

// nidKey drops the ".0" a float-typed export leaves on an id.
func nidKey(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// Len returns the number of indexed ground-truth records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Match finds the ground-truth record for r. Rules are tried in order and
// the first hit wins:
//
//  1. the image id equals a front image id
//  2. the image id equals a back image id
//  3. only when r has no image id: the nid numbers agree
//
// A record with an image id that matches nothing is never matched by nid,
// so a shared nid cannot pull in an unrelated person.
func (idx *Index) Match(r dataset.EnteredRecord) (Pair, bool) {
	imageID := r.ImageID.String()

	if imageID != "" {
		if pos, ok := idx.byFront[imageID]; ok {
			return idx.pair(r, pos, FrontImageID), true
		}
		if pos, ok := idx.byBack[imageID]; ok {
			return idx.pair(r, pos, BackImageID), true
		}
	}

	if strings.TrimSpace(imageID) == "" && r.NIDNo.String() != "" {
		if pos, ok := idx.byNID[nidKey(r.NIDNo.Text)]; ok {
			return idx.pair(r, pos, NIDNumber), true
		}
	}

	return Pair{}, false
}

func (idx *Index) pair(r dataset.EnteredRecord, pos int, method Method) Pair {
	return Pair{Entered: r, GroundTruth: idx.records[pos], Method: method}
}
