package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sheetssend-cloud/tewtest/pkg/domain"
	"github.com/sheetssend-cloud/tewtest/pkg/imgutil"
	"google.golang.org/genai"
)

// GeminiGenerator はロゴ・職位・組織名・色調から表紙画像を生成します。
type GeminiGenerator struct {
	imgCore     *GeminiImageCore
	model       string
	aspectRatio string
}

// NewGeminiGenerator は GeminiGenerator を初期化します。
// model と aspectRatio が空の場合は既定値を使います。
func NewGeminiGenerator(core *GeminiImageCore, model, aspectRatio string) (*GeminiGenerator, error) {
	if core == nil {
		return nil, fmt.Errorf("core (GeminiImageCore) is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}
	return &GeminiGenerator{
		imgCore:     core,
		model:       model,
		aspectRatio: aspectRatio,
	}, nil
}

// GenerateCover は表紙画像を 1 枚生成し、data URI として返します。
// 失敗時は常に *GenerationError を返します。
func (g *GeminiGenerator) GenerateCover(ctx context.Context, logo domain.ImageData, position, organization, colorTone string) (domain.ImageData, error) {
	if logo.IsZero() || position == "" || organization == "" {
		return "", newGenerationError(nil, "ต้องมีโลโก้ ตำแหน่ง และหน่วยงานก่อนสร้างภาพ")
	}

	logoPart, err := g.imgCore.prepareLogoPart(logo)
	if err != nil {
		return "", err
	}
	parts := []*genai.Part{
		{Text: buildPrompt(position, organization, colorTone)},
		logoPart,
	}

	requestID := uuid.NewString()
	logger := slog.With("request_id", requestID, "model", g.model)
	logger.InfoContext(ctx, "表紙生成リクエストを送信します", "position", position, "organization", organization, "color_tone", colorTone)
	started := time.Now()

	resp, err := g.imgCore.executeRequest(ctx, g.model, parts, ImageOptions{
		AspectRatio:  g.aspectRatio,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		logger.WarnContext(ctx, "表紙生成に失敗しました", "error", err, "cause", causeOf(err), "elapsed", time.Since(started))
		return "", err
	}

	logger.InfoContext(ctx, "表紙生成が完了しました", "mime_type", resp.MimeType, "bytes", len(resp.Data), "elapsed", time.Since(started))
	return domain.ImageData(imgutil.EncodeDataURI(resp.MimeType, resp.Data)), nil
}

func causeOf(err error) any {
	if ge, ok := err.(*GenerationError); ok && ge.Err != nil {
		return ge.Err.Error()
	}
	return nil
}
