package compare

import (
	"fmt"
	"io"
)

// WriteReport prints the scores and up to maxDiffs differences. A negative
// maxDiffs prints all of them.
func WriteReport(w io.Writer, r Result, maxDiffs int) {
	fmt.Fprintf(w, "Reference words:       %d\n", r.ReferenceWords)
	fmt.Fprintf(w, "Hypothesis words:      %d\n", r.HypothesisWords)
	fmt.Fprintf(w, "Total words:           %d\n", r.TotalWords)
	fmt.Fprintf(w, "Matching words:        %d\n", r.Matches)
	fmt.Fprintf(w, "Different words:       %g\n", r.DifferentWords)
	fmt.Fprintf(w, "Word order similarity: %.2f%%\n", r.WordOrderSimilarity*100)
	fmt.Fprintf(w, "Word error rate:       %.2f%%\n", r.WER*100)

	if maxDiffs == 0 || len(r.Differences) == 0 {
		return
	}
	fmt.Fprintln(w, "\nDifferences:")
	for i, d := range r.Differences {
		if maxDiffs > 0 && i == maxDiffs {
			fmt.Fprintf(w, "  ... %d more\n", len(r.Differences)-maxDiffs)
			break
		}
		switch d.Op {
		case OpSubstitute:
			fmt.Fprintf(w, "  %4d  %q -> %q\n", d.Position, d.Reference, d.Hypothesis)
		case OpDelete:
			fmt.Fprintf(w, "  %4d  -%q\n", d.Position, d.Reference)
		case OpInsert:
			fmt.Fprintf(w, "  %4d  +%q\n", d.Position, d.Hypothesis)
		}
	}
}
