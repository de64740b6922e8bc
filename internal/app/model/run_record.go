package model

import "time"

type RunKind string

const (
	RunTranscribe RunKind = "transcribe"
	RunConvert    RunKind = "convert"
	RunVideo      RunKind = "video"
)

// RunRecord is one row of the optional run history.
type RunRecord struct {
	ID           string
	Kind         RunKind
	Source       string
	Output       string
	Provider     string
	Status       string
	ErrorMessage string
	AudioSeconds float64
	CreatedAt    time.Time
}
