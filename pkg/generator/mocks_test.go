package generator

import (
	"context"

	"google.golang.org/genai"
)

// --- Mocks ---

// pngHeader は http.DetectContentType が image/png と判定する最小のバイト列です。
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90w\x53\xde")

type generateCall struct {
	model string
	parts []*genai.Part
	opts  ImageOptions
}

type mockAIClient struct {
	calls        []generateCall
	generateFunc func(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error)
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error) {
	m.calls = append(m.calls, generateCall{model: model, parts: parts, opts: opts})
	if m.generateFunc != nil {
		return m.generateFunc(ctx, model, parts, opts)
	}
	return imageResponse("image/png", pngHeader), nil
}

func imageResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}},
			},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}
