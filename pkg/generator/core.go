package generator

import (
	"context"
	"fmt"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
	"google.golang.org/genai"
)

// GeminiImageCore はリクエストの送信とレスポンス解析を担う基盤です。
type GeminiImageCore struct {
	aiClient Model
}

// NewGeminiImageCore は依存関係を注入して GeminiImageCore を初期化します。
func NewGeminiImageCore(aiClient Model) (*GeminiImageCore, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	return &GeminiImageCore{aiClient: aiClient}, nil
}

// executeRequest はパーツを送信し、最初の候補から画像を取り出します。
func (c *GeminiImageCore) executeRequest(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*domain.ImageResponse, error) {
	resp, err := c.aiClient.GenerateWithParts(ctx, model, parts, opts)
	if err != nil {
		return nil, newGenerationError(err, "ไม่สามารถเชื่อมต่อบริการสร้างภาพได้: %v", err)
	}

	out, err := c.parseToResponse(resp)
	if err != nil {
		return nil, err
	}

	return &domain.ImageResponse{
		Data:     out.Data,
		MimeType: out.MimeType,
	}, nil
}
