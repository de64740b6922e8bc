package audio

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/tcolgate/mp3"

	apperrors "audio2text/internal/app/errors"
)

// Mp3Info is what a frame walk of an MP3 file found.
type Mp3Info struct {
	Frames   int
	Duration time.Duration
}

// InspectMp3 walks every MPEG audio frame in path.
func InspectMp3(path string) (Mp3Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Mp3Info{}, err
	}
	defer f.Close()

	d := mp3.NewDecoder(f)
	var (
		frame   mp3.Frame
		skipped int
		info    Mp3Info
	)
	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return info, err
		}
		info.Frames++
		info.Duration += frame.Duration()
	}
	return info, nil
}

// VerifyMp3 fails when path holds no decodable MP3 frames.
func VerifyMp3(path string) (time.Duration, error) {
	info, err := InspectMp3(path)
	if err != nil {
		return 0, apperrors.KindWrap(apperrors.ErrEngine, err, "output %s is not a valid mp3", path)
	}
	if info.Frames == 0 {
		return 0, apperrors.Kind(apperrors.ErrEngine, "output %s contains no mp3 frames", path)
	}
	return info.Duration, nil
}
