package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Research ResearchConfig `yaml:"research"`
	Script   ScriptConfig   `yaml:"script"`
	Images   ImagesConfig   `yaml:"images"`
	Audio    AudioConfig    `yaml:"audio"`
	Captions CaptionsConfig `yaml:"captions"`
	Render   RenderConfig   `yaml:"render"`
	Compose  ComposeConfig  `yaml:"compose"`
	Upload   UploadConfig   `yaml:"upload"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Paths    PathsConfig    `yaml:"paths"`
}

type ResearchConfig struct {
	Subreddits  []string `yaml:"subreddits"`
	PostsPerSub int      `yaml:"posts_per_sub"`
	MinScore    int      `yaml:"min_score"`
	MinComments int      `yaml:"min_comments"`
}

type ScriptConfig struct {
	GeminiModel     string  `yaml:"gemini_model"`
	Temperature     float64 `yaml:"temperature"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
}

type ImagesConfig struct {
	GeminiModel string `yaml:"gemini_model"`
}

type AudioConfig struct {
	Voice      string `yaml:"voice"`
	MaxRetries int    `yaml:"max_retries"`
}

type CaptionsConfig struct {
	WhisperModel string `yaml:"whisper_model"`
	Language     string `yaml:"language"`
}

type RenderConfig struct {
	PixelWidth  int     `yaml:"pixel_width"`
	PixelHeight int     `yaml:"pixel_height"`
	FPS         int     `yaml:"fps"`
	BGOpacity   float64 `yaml:"bg_opacity"`
	MinHoldSec  float64 `yaml:"min_hold_sec"`
}

type ComposeConfig struct {
	Speed         float64 `yaml:"speed"`
	BurnCaptions  bool    `yaml:"burn_captions"`
	FontSize      int     `yaml:"font_size"`
	MarginBottom  int     `yaml:"margin_bottom"`
	SFXVolumeGain float64 `yaml:"sfx_volume_gain"`
}

type UploadConfig struct {
	Enabled           bool   `yaml:"enabled"`
	Visibility        string `yaml:"visibility"`
	CategoryID        string `yaml:"category_id"`
	NotifySubscribers bool   `yaml:"notify_subscribers"`
	MadeForKids       bool   `yaml:"made_for_kids"`
	DefaultLanguage   string `yaml:"default_language"`
}

type PipelineConfig struct {
	Workers                int  `yaml:"workers"`
	StageTimeoutMin        int  `yaml:"stage_timeout_min"`
	ContinueOnSceneFailure bool `yaml:"continue_on_scene_failure"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	SFX    string `yaml:"sfx"`
}

// Load reads config.yaml and returns a Config struct
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Script.GeminiModel == "" {
		c.Script.GeminiModel = "gemini-2.5-flash"
	}
	if c.Script.Temperature == 0 {
		c.Script.Temperature = 1.0
	}
	if c.Script.MaxOutputTokens == 0 {
		c.Script.MaxOutputTokens = 2048
	}
	if c.Images.GeminiModel == "" {
		c.Images.GeminiModel = "gemini-2.0-flash-exp"
	}
	if c.Audio.Voice == "" {
		c.Audio.Voice = "en-US-GuyNeural"
	}
	if c.Audio.MaxRetries == 0 {
		c.Audio.MaxRetries = 3
	}
	if c.Captions.WhisperModel == "" {
		c.Captions.WhisperModel = "base"
	}
	if c.Captions.Language == "" {
		c.Captions.Language = "en"
	}
	if c.Render.PixelWidth == 0 {
		c.Render.PixelWidth = 1080
	}
	if c.Render.PixelHeight == 0 {
		c.Render.PixelHeight = 1920
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = 30
	}
	if c.Render.BGOpacity == 0 {
		c.Render.BGOpacity = 0.35
	}
	if c.Render.MinHoldSec == 0 {
		c.Render.MinHoldSec = 1.0
	}
	if c.Compose.Speed == 0 {
		c.Compose.Speed = 1.35
	}
	if c.Compose.FontSize == 0 {
		c.Compose.FontSize = 16
	}
	if c.Compose.MarginBottom == 0 {
		c.Compose.MarginBottom = 280
	}
	if c.Compose.SFXVolumeGain == 0 {
		c.Compose.SFXVolumeGain = 1.5
	}
	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = 3
	}
	if c.Pipeline.StageTimeoutMin == 0 {
		c.Pipeline.StageTimeoutMin = 20
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if len(c.Research.Subreddits) == 0 {
		c.Research.Subreddits = []string{"memes", "GenAlpha", "shitposting"}
	}
	if c.Research.PostsPerSub == 0 {
		c.Research.PostsPerSub = 25
	}
}
