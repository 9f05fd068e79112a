package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRelabelsAndFillsHints(t *testing.T) {
	s := &Script{
		Title: "Test",
		Scenes: []Scene{
			{SceneID: 7, Narration: "a", DurationHint: 5},
			{SceneID: 7, Narration: "b"},
			{SceneID: 0, Narration: "c", DurationHint: -1},
		},
	}
	s.Normalize()

	require.Equal(t, 1, s.Scenes[0].SceneID)
	require.Equal(t, 2, s.Scenes[1].SceneID)
	require.Equal(t, 3, s.Scenes[2].SceneID)
	require.Equal(t, 5.0, s.Scenes[0].DurationHint)
	require.Equal(t, DefaultDurationHint, s.Scenes[1].DurationHint)
	require.Equal(t, DefaultDurationHint, s.Scenes[2].DurationHint)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		script  Script
		wantErr bool
	}{
		{"ok", Script{Title: "t", Scenes: []Scene{{Narration: "hi"}}}, false},
		{"no scenes", Script{Title: "t"}, true},
		{"empty narration", Script{Title: "t", Scenes: []Scene{{Narration: ""}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.script.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateAligned(t *testing.T) {
	s := &Script{Scenes: []Scene{{Narration: "a"}, {Narration: "b"}}}
	require.NoError(t, s.ValidateAligned("image", 2))
	require.Error(t, s.ValidateAligned("image", 1))
	require.Error(t, s.ValidateAligned("audio", 3))
}
