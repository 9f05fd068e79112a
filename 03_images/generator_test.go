package images

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func respWithParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func TestFirstImagePartSkipsTextParts(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47}
	resp := respWithParts(
		&genai.Part{Text: "Here is your image:"},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: png}},
	)

	data, err := FirstImagePart(resp)
	require.NoError(t, err)
	require.Equal(t, png, data)
}

func TestFirstImagePartReturnsFirstImage(t *testing.T) {
	resp := respWithParts(
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("first")}},
		&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("second")}},
	)

	data, err := FirstImagePart(resp)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), data)
}

func TestFirstImagePartNoImageIsError(t *testing.T) {
	_, err := FirstImagePart(respWithParts(&genai.Part{Text: "no image for you"}))
	require.Error(t, err)

	_, err = FirstImagePart(respWithParts(
		&genai.Part{InlineData: &genai.Blob{MIMEType: "audio/wav", Data: []byte("x")}},
	))
	require.Error(t, err, "non-image inline data must not count")

	_, err = FirstImagePart(&genai.GenerateContentResponse{})
	require.Error(t, err)
}
