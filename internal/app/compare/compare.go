// Package compare scores a transcript against a reference at the word level.
package compare

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	apperrors "audio2text/internal/app/errors"
	"audio2text/internal/app/util/files"
)

type Op string

const (
	OpMatch      Op = "match"
	OpSubstitute Op = "substitute"
	OpDelete     Op = "delete"
	OpInsert     Op = "insert"
)

// Pair is one step of the word alignment. RefIndex or HypIndex is -1 on the
// side without a word.
type Pair struct {
	Op         Op
	RefIndex   int
	HypIndex   int
	Reference  string
	Hypothesis string
}

// Difference is one word-level edit turning the reference into the
// hypothesis. Position indexes the reference word list.
type Difference struct {
	Op         Op
	Position   int
	Reference  string
	Hypothesis string
}

type Result struct {
	ReferenceWords  int
	HypothesisWords int
	// TotalWords is the length of the longer text.
	TotalWords int
	// Matches is the length of the longest common word subsequence.
	Matches int
	// DifferentWords counts unmatched words on both sides, halved.
	DifferentWords      float64
	WordOrderSimilarity float64
	WER                 float64
	Differences         []Difference
	// Alignment walks both texts in order, matches included.
	Alignment []Pair
}

// Compare scores hypothesis against reference after running both through
// Words.
func Compare(reference, hypothesis string) Result {
	return CompareWords(Words(reference), Words(hypothesis))
}

// CompareWords scores two already normalised word lists.
func CompareWords(ref, hyp []string) Result {
	a, b := intern(ref, hyp)

	res := Result{
		ReferenceWords:  len(ref),
		HypothesisWords: len(hyp),
		TotalWords:      max(len(ref), len(hyp)),
	}

	total := len(ref) + len(hyp)
	if total == 0 {
		res.WordOrderSimilarity = 1
		return res
	}

	// With substitution costing a deletion plus an insertion the distance is
	// total-2*LCS.
	indel := levenshtein.DistanceForStrings(a, b, levenshtein.DefaultOptions)
	res.Matches = (total - indel) / 2
	res.DifferentWords = float64(total-2*res.Matches) / 2
	res.WordOrderSimilarity = 2 * float64(res.Matches) / float64(total)

	script := levenshtein.EditScriptForStrings(a, b, levenshtein.DefaultOptionsWithSub)
	res.Alignment, res.Differences = align(script, ref, hyp)
	edits := len(res.Differences)
	switch {
	case len(ref) > 0:
		res.WER = float64(edits) / float64(len(ref))
	case edits > 0:
		res.WER = 1
	}
	return res
}

// intern maps every distinct word to its own rune so the rune based edit
// distance functions work on words.
func intern(ref, hyp []string) ([]rune, []rune) {
	ids := make(map[string]rune, len(ref)+len(hyp))
	conv := func(words []string) []rune {
		out := make([]rune, len(words))
		for i, w := range words {
			id, ok := ids[w]
			if !ok {
				id = rune(len(ids) + 1)
				ids[w] = id
			}
			out[i] = id
		}
		return out
	}
	return conv(ref), conv(hyp)
}

func align(script levenshtein.EditScript, ref, hyp []string) ([]Pair, []Difference) {
	pairs := make([]Pair, 0, len(script))
	var diffs []Difference
	i, j := 0, 0
	for _, op := range script {
		switch op {
		case levenshtein.Match:
			pairs = append(pairs, Pair{Op: OpMatch, RefIndex: i, HypIndex: j, Reference: ref[i], Hypothesis: hyp[j]})
			i++
			j++
		case levenshtein.Sub:
			pairs = append(pairs, Pair{Op: OpSubstitute, RefIndex: i, HypIndex: j, Reference: ref[i], Hypothesis: hyp[j]})
			diffs = append(diffs, Difference{Op: OpSubstitute, Position: i, Reference: ref[i], Hypothesis: hyp[j]})
			i++
			j++
		case levenshtein.Del:
			pairs = append(pairs, Pair{Op: OpDelete, RefIndex: i, HypIndex: -1, Reference: ref[i]})
			diffs = append(diffs, Difference{Op: OpDelete, Position: i, Reference: ref[i]})
			i++
		case levenshtein.Ins:
			pairs = append(pairs, Pair{Op: OpInsert, RefIndex: -1, HypIndex: j, Hypothesis: hyp[j]})
			diffs = append(diffs, Difference{Op: OpInsert, Position: i, Hypothesis: hyp[j]})
			j++
		}
	}
	return pairs, diffs
}

// ReadTranscript loads a .txt transcript, or a .docx one with its
// paragraphs joined by single spaces.
func ReadTranscript(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".txt" && ext != ".docx" {
		return "", apperrors.Kind(apperrors.ErrUnsupportedInput, "%s: only .txt and .docx transcripts can be compared", path)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperrors.KindWrap(apperrors.ErrFileNotFound, err, "transcript not found")
		}
		return "", err
	}
	if ext == ".docx" {
		return readDocx(path)
	}
	return files.ReadOutputFile(path)
}

// CompareFiles reads two transcripts and compares them.
func CompareFiles(referencePath, hypothesisPath string) (Result, error) {
	ref, err := ReadTranscript(referencePath)
	if err != nil {
		return Result{}, err
	}
	hyp, err := ReadTranscript(hypothesisPath)
	if err != nil {
		return Result{}, err
	}
	return Compare(ref, hyp), nil
}
