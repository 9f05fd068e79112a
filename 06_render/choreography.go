package render

import (
	"fmt"
	"math"
	"os"
	"strings"

	"brainrot-pipeline/config"
	"brainrot-pipeline/types"
)

// Background and accent palette
const bgDark = "0x0a0a0a"

var chaosColors = []string{"0xFF00FF", "0x00FFFF", "0xFFFF00", "0xFF3300", "0x39FF14"}

// singularityTerms converge to a point in the fixed finale
var singularityTerms = []string{"SKIBIDI", "SIGMA", "RIZZ", "OHIO", "GYATT", "MOG", "AURA"}

const outroText = "This has been…\neducational."

// ElementKind classifies on-screen elements
type ElementKind int

const (
	ElementCaption ElementKind = iota
	ElementMath
	ElementTerm
	ElementOutro
	ElementFlash
)

// Converge moves an element toward frame center, starting At seconds into
// the segment, over Dur seconds
type Converge struct {
	At  float64
	Dur float64
}

// Element is one timed on-screen element of a segment. XPos/YPos are
// frame fractions for the element center; Jitter is a per-frame shake
// amplitude in pixels.
type Element struct {
	Kind     ElementKind
	Text     string
	Color    string
	FontSize int
	EnterAt  float64
	ExitAt   float64 // 0 means visible until segment end
	XPos     float64
	YPos     float64
	Jitter   float64
	Converge *Converge
}

// Segment is one contiguous stretch of the output video: a scene or the
// finale. Elements are drawn in order.
type Segment struct {
	Name     string
	Duration float64
	BGImage  string // empty = plain dark background
	Elements []Element
}

// Sequence is the full choreography: one segment per scene followed by
// exactly one finale segment
type Sequence struct {
	Segments   []Segment
	SceneCount int
}

// colorPicker lets tests pin the accent color choice
type colorPicker func() string

// BuildSequence turns a script plus its index-aligned image paths into
// the full choreography. Missing image files drop the background for
// that scene only.
func BuildSequence(script *types.Script, imagePaths []string, cfg *config.Config, pick colorPicker) Sequence {
	seq := Sequence{SceneCount: len(script.Scenes)}

	for i, scene := range script.Scenes {
		bg := ""
		if i < len(imagePaths) && imagePaths[i] != "" {
			if _, err := os.Stat(imagePaths[i]); err == nil {
				bg = imagePaths[i]
			}
		}
		seg := buildSceneSegment(scene, bg, cfg, pick, i == 0)
		seq.Segments = append(seq.Segments, seg)
	}

	seq.Segments = append(seq.Segments, buildFinaleSegment(pick))
	return seq
}

// buildSceneSegment choreographs one scene: caption in, math elements in
// order, hold, transition flash
func buildSceneSegment(scene types.Scene, bgImage string, cfg *config.Config, pick colorPicker, opening bool) Segment {
	seg := Segment{
		Name:    fmt.Sprintf("scene_%d", scene.SceneID),
		BGImage: bgImage,
	}

	// The very first segment opens on a flashbang
	if opening {
		seg.Elements = append(seg.Elements, Element{Kind: ElementFlash, EnterAt: 0})
	}

	cursor := 0.3
	seg.Elements = append(seg.Elements, Element{
		Kind:     ElementCaption,
		Text:     wrapText(scene.Narration, 28),
		Color:    pick(),
		FontSize: 52,
		EnterAt:  cursor,
		XPos:     0.5,
		YPos:     0.14,
		Jitter:   6,
	})

	y := 0.42
	for _, elem := range scene.MathElements {
		cursor += 0.3
		seg.Elements = append(seg.Elements, Element{
			Kind:     ElementMath,
			Text:     elem,
			Color:    pick(),
			FontSize: 44,
			EnterAt:  cursor,
			XPos:     0.5,
			YPos:     y,
			Jitter:   5,
		})
		y += 0.12
	}

	hold := math.Max(scene.DurationHint*0.4, cfg.Render.MinHoldSec)
	seg.Duration = cursor + hold + 0.25
	seg.Elements = append(seg.Elements, Element{
		Kind:    ElementFlash,
		EnterAt: seg.Duration - 0.1,
	})
	return seg
}

// buildFinaleSegment choreographs the singularity: the brainrot terms on
// a circle converge to the center, flash, then the outro caption
func buildFinaleSegment(pick colorPicker) Segment {
	const (
		convergeAt  = 0.3
		convergeDur = 1.0
		flashAt     = convergeAt + convergeDur
		outroAt     = flashAt + 0.15
		outroHold   = 1.5
	)

	seg := Segment{
		Name:     "singularity",
		Duration: outroAt + outroHold,
	}

	for i, term := range singularityTerms {
		angle := float64(i) * (2 * math.Pi / float64(len(singularityTerms)))
		seg.Elements = append(seg.Elements, Element{
			Kind:     ElementTerm,
			Text:     term,
			Color:    pick(),
			FontSize: 46,
			EnterAt:  0,
			ExitAt:   flashAt,
			XPos:     0.5 + 0.38*math.Cos(angle),
			YPos:     0.5 + 0.22*math.Sin(angle),
			Jitter:   10,
			Converge: &Converge{At: convergeAt, Dur: convergeDur},
		})
	}

	seg.Elements = append(seg.Elements, Element{Kind: ElementFlash, EnterAt: flashAt})
	seg.Elements = append(seg.Elements, Element{
		Kind:     ElementOutro,
		Text:     outroText,
		Color:    "white",
		FontSize: 46,
		EnterAt:  outroAt,
		XPos:     0.5,
		YPos:     0.5,
	})
	return seg
}

// wrapText breaks a narration line into rows of at most width characters
func wrapText(s string, width int) string {
	words := strings.Fields(s)
	var lines []string
	var line string
	for _, w := range words {
		if line == "" {
			line = w
			continue
		}
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
