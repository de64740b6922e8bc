package model

import "time"

// ConversionJob is one source file to re-encode as MP3.
type ConversionJob struct {
	Source      string
	Destination string
	Bitrate     string
}

type ConversionStatus string

const (
	StatusConverted ConversionStatus = "converted"
	StatusSkipped   ConversionStatus = "skipped"
	StatusFailed    ConversionStatus = "failed"
)

// ConversionResult records what happened to a single job.
type ConversionResult struct {
	Job           ConversionJob
	Status        ConversionStatus
	Reason        string
	Err           error
	Elapsed       time.Duration
	AudioDuration time.Duration
}

// BatchSummary aggregates the results of one convert invocation.
type BatchSummary struct {
	Results []ConversionResult
	Aborted bool
}

func (s *BatchSummary) count(status ConversionStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

func (s *BatchSummary) Converted() int { return s.count(StatusConverted) }
func (s *BatchSummary) Skipped() int   { return s.count(StatusSkipped) }
func (s *BatchSummary) Failed() int    { return s.count(StatusFailed) }

// FailedResults returns the failed entries in processing order.
func (s *BatchSummary) FailedResults() []ConversionResult {
	out := make([]ConversionResult, 0)
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}
