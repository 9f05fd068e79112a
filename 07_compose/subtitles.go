package compose

import (
	"fmt"
	"os"
	"strings"

	"brainrot-pipeline/types"
)

// wordsPerCue groups word-level timestamps into short readable cues
const wordsPerCue = 4

// Cue is one subtitle entry on the final (sped-up) timeline
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// BuildCues flattens per-scene word timestamps into cues on the final
// video's timeline. offsets[i] is where scene i's clip starts in the
// concatenated narration (negative = clip not present, transcription
// skipped). Word times are divided by the speed factor because captions
// are burned after the speed change.
func BuildCues(transcriptions []types.Transcription, offsets []float64, speed float64) []Cue {
	if speed <= 0 {
		speed = 1.0
	}

	var cues []Cue
	for i, tr := range transcriptions {
		offset := 0.0
		if i < len(offsets) {
			if offsets[i] < 0 {
				continue
			}
			offset = offsets[i]
		}

		var words []types.Word
		for _, seg := range tr.Segments {
			words = append(words, seg.Words...)
		}

		for j := 0; j < len(words); j += wordsPerCue {
			end := j + wordsPerCue
			if end > len(words) {
				end = len(words)
			}
			group := words[j:end]

			var texts []string
			for _, w := range group {
				texts = append(texts, w.Word)
			}
			cues = append(cues, Cue{
				Start: (offset + group[0].Start) / speed,
				End:   (offset + group[len(group)-1].End) / speed,
				Text:  strings.Join(texts, " "),
			})
		}
	}
	return cues
}

// WriteSRT renders the cues as an SRT file
func WriteSRT(transcriptions []types.Transcription, offsets []float64, speed float64, outPath string) error {
	cues := BuildCues(transcriptions, offsets, speed)
	if len(cues) == 0 {
		return fmt.Errorf("no caption cues to write")
	}

	var sb strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTimestamp(cue.Start), srtTimestamp(cue.End), cue.Text)
	}
	return os.WriteFile(outPath, []byte(sb.String()), 0644)
}

// srtTimestamp formats seconds as HH:MM:SS,mmm
func srtTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int(sec*1000 + 0.5)
	h := ms / 3600000
	ms -= h * 3600000
	m := ms / 60000
	ms -= m * 60000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
