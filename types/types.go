package types

import "fmt"

// Scene is one narrative beat of the generated script
type Scene struct {
	SceneID      int      `json:"scene_id"` // 1-based display label; lists are index-aligned
	Narration    string   `json:"narration"`
	ImagePrompt  string   `json:"image_prompt"`
	MathElements []string `json:"math_elements"`
	DurationHint float64  `json:"duration_hint"`
}

// Script is the full structured script for one video
type Script struct {
	Title  string  `json:"title"`
	Scenes []Scene `json:"scenes"`
}

// Word is a single word with its timestamps
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is one transcription segment with word-level timing
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

// Transcription holds word-level timestamps for one narration clip
type Transcription struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// VideoMetadata holds all YouTube upload metadata
type VideoMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	CategoryID  string   `json:"category_id"`
	Visibility  string   `json:"visibility"`
}

// PipelineState tracks the full state of one pipeline run
type PipelineState struct {
	RunID         string         `json:"run_id"`
	Topic         string         `json:"topic"`
	StartedAt     string         `json:"started_at"`
	CompletedAt   string         `json:"completed_at"`
	Script        *Script        `json:"script"`
	ImageFiles    []string       `json:"image_files"`
	AudioFiles    []string       `json:"audio_files"`
	SilentVideo   string         `json:"silent_video"`
	FinalVideo    string         `json:"final_video"`
	Metadata      *VideoMetadata `json:"metadata,omitempty"`
	YouTubeURL    string         `json:"youtube_url,omitempty"`
	SceneFailures []string       `json:"scene_failures,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// DefaultDurationHint applies when the model omits a scene's duration_hint
const DefaultDurationHint = 4.0

// Normalize relabels scene ids to sequence position and fills missing
// duration hints. Downstream lists are index-aligned; SceneID is only a
// display label.
func (s *Script) Normalize() {
	for i := range s.Scenes {
		s.Scenes[i].SceneID = i + 1
		if s.Scenes[i].DurationHint <= 0 {
			s.Scenes[i].DurationHint = DefaultDurationHint
		}
	}
}

// Validate checks the script is usable before any asset generation
func (s *Script) Validate() error {
	if len(s.Scenes) == 0 {
		return fmt.Errorf("script %q has no scenes", s.Title)
	}
	for i, scene := range s.Scenes {
		if scene.Narration == "" {
			return fmt.Errorf("scene %d has empty narration", i+1)
		}
	}
	return nil
}

// ValidateAligned enforces the index-aligned convention at a stage
// boundary: a per-scene list must match the script's scene count exactly.
func (s *Script) ValidateAligned(name string, n int) error {
	if n != len(s.Scenes) {
		return fmt.Errorf("%s list has %d entries for %d scenes", name, n, len(s.Scenes))
	}
	return nil
}
