package main

import (
	"audio2text/cmd/a2t/cmd"

	// Import providers to register them
	_ "audio2text/internal/app/api/gemini"
	_ "audio2text/internal/app/api/openai/whisper"
)

func main() {
	cmd.Execute()
}
