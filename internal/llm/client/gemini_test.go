package llmclient

import (
	"testing"

	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"
)

func TestCandidateText(t *testing.T) {
	text := func(s string) *genai.Part { return &genai.Part{Text: s} }

	out, err := candidateText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{text("class T"), nil, text("estCase: ...")}}},
			{Content: &genai.Content{Parts: []*genai.Part{text("ignored")}}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "class TestCase: ...", out)

	empty := []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{nil}},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{text("")}}}}},
	}
	for i, resp := range empty {
		_, err := candidateText(resp)
		require.ErrorIs(t, err, ErrEmptyResponse, "case %d", i)
	}
}

func TestGeminiClient_Name(t *testing.T) {
	cli, err := NewGeminiClient(t.Context(), "test-key", "gemini-2.5-flash", 0)
	require.NoError(t, err)
	require.Equal(t, "Gemini:gemini-2.5-flash", cli.Name())
	require.Equal(t, 12000, cli.TokenCapacity())
}
