package generator

import (
	"context"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
	"google.golang.org/genai"
)

// CoverGenerator はコントローラーが利用する表紙生成の窓口です。
// 1 回の呼び出しにつき外部サービスへのリクエストは 1 回だけで、結果はキャッシュしません。
type CoverGenerator interface {
	GenerateCover(ctx context.Context, logo domain.ImageData, position, organization, colorTone string) (domain.ImageData, error)
}

// Model は生成 AI バックエンドとの通信を抽象化したインターフェースです。
type Model interface {
	// GenerateWithParts は、テキストと画像のパーツから 1 回だけ生成リクエストを送ります。
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts ImageOptions) (*genai.GenerateContentResponse, error)
}
