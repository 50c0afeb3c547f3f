package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sheetssend-cloud/tewtest/pkg/generator"
	"google.golang.org/genai"
)

// responseModalities は画像とテキストの両方を返させる指定です。
// 画像だけを指定すると一部のモデルがリクエストを拒否します。
var responseModalities = []string{string(genai.ModalityImage), string(genai.ModalityText)}

// GenAIModel は genai.Client を generator.Model として使うためのアダプターです。
type GenAIModel struct {
	client *genai.Client
}

// NewGenAIModel は Gemini API バックエンドのクライアントを作成します。
// baseURL は空で構いません。テストや社内プロキシ経由の場合にのみ指定します。
func NewGenAIModel(ctx context.Context, apiKey, baseURL string) (*GenAIModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの初期化に失敗しました: %w", err)
	}
	return &GenAIModel{client: client}, nil
}

// GenerateWithParts はパーツを 1 つのユーザーメッセージとして GenerateContent を呼び出します。
func (m *GenAIModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts generator.ImageOptions) (*genai.GenerateContentResponse, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: responseModalities,
	}
	if opts.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	slog.DebugContext(ctx, "GenerateContent を呼び出します", "model", model, "parts", len(parts))
	resp, err := m.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("GenerateContent 失敗: %w", err)
	}
	return resp, nil
}
