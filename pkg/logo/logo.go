// Package logo は表紙生成に送る既定ロゴ画像を、ファイルやネットワークに触れずにメモリ上で描画します。
package logo

import (
	"errors"
	"fmt"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
	"github.com/sheetssend-cloud/tewtest/pkg/imgutil"
)

const (
	// BrandLabel は既定ロゴに描かれる組織ブランド名です。
	BrandLabel = "OPEN SHEETS"

	Width  = 400
	Height = 200
)

// ErrNoSurface は描画面を用意できなかった場合のエラーです。この場合ロゴは未設定のままになります。
var ErrNoSurface = errors.New("drawing surface unavailable")

// Instructions は 1 枚のロゴを描くための命令一式です。
type Instructions struct {
	Width  int
	Height int
	Border Border
	Label  Label
}

// Border は枠線付き矩形です。LineWidth が 0 なら描きません。
type Border struct {
	X, Y, W, H float64
	LineWidth  float64
	Color      string
}

// Label は (X, Y) を中心に描く 1 行のテキストです。
type Label struct {
	Text     string
	X, Y     float64
	FontSize float64
	Bold     bool
	Color    string
}

// DefaultInstructions は既定ロゴの描画命令を返します。
// 400x200 の透明キャンバス、各辺から 10 内側の太さ 4 の枠、中央に太字のブランド名。
func DefaultInstructions() Instructions {
	const inset = 10
	return Instructions{
		Width:  Width,
		Height: Height,
		Border: Border{
			X: inset, Y: inset,
			W: Width - 2*inset, H: Height - 2*inset,
			LineWidth: 4,
			Color:     "#333",
		},
		Label: Label{
			Text:     BrandLabel,
			X:        Width / 2,
			Y:        Height / 2,
			FontSize: 48,
			Bold:     true,
			Color:    "#000",
		},
	}
}

// DefaultLogo は既定ロゴを描画し、PNG の data URI として返します。
// r が nil、または描画に失敗した場合はエラーを返し、呼び出し側はロゴを未設定のままにします。
func DefaultLogo(r Renderer) (domain.ImageData, error) {
	if r == nil {
		return "", ErrNoSurface
	}
	data, err := r.Render(DefaultInstructions())
	if err != nil {
		return "", fmt.Errorf("既定ロゴの描画に失敗しました: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("既定ロゴの描画に失敗しました: %w", ErrNoSurface)
	}
	return domain.ImageData(imgutil.EncodeDataURI(imgutil.MimePNG, data)), nil
}
