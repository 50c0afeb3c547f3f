package logo

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Renderer は描画命令を受け取り、エンコード済みの PNG を返す描画能力です。
// 実体のある描画面を持たない環境（サーバー・テスト）でも差し替えられるようにしています。
type Renderer interface {
	Render(in Instructions) ([]byte, error)
}

// GGRenderer は fogleman/gg による Renderer の実装です。
type GGRenderer struct {
	once    sync.Once
	bold    *truetype.Font
	regular *truetype.Font
	err     error
}

// NewGGRenderer は埋め込みの Go フォントを使う GGRenderer を返します。
func NewGGRenderer() *GGRenderer {
	return &GGRenderer{}
}

func (r *GGRenderer) loadFonts() error {
	r.once.Do(func() {
		if r.bold, r.err = truetype.Parse(gobold.TTF); r.err != nil {
			return
		}
		r.regular, r.err = truetype.Parse(goregular.TTF)
	})
	return r.err
}

func (r *GGRenderer) face(l Label) (font.Face, error) {
	if err := r.loadFonts(); err != nil {
		return nil, fmt.Errorf("フォントの読み込みに失敗しました: %w", err)
	}
	f := r.regular
	if l.Bold {
		f = r.bold
	}
	return truetype.NewFace(f, &truetype.Options{Size: l.FontSize, DPI: 72}), nil
}

// Render は描画命令どおりに透明背景のキャンバスへ枠とラベルを描き、PNG にエンコードします。
func (r *GGRenderer) Render(in Instructions) ([]byte, error) {
	if in.Width <= 0 || in.Height <= 0 {
		return nil, fmt.Errorf("%w: キャンバスサイズが不正です (%dx%d)", ErrNoSurface, in.Width, in.Height)
	}

	dc := gg.NewContext(in.Width, in.Height)

	if b := in.Border; b.LineWidth > 0 {
		dc.SetHexColor(b.Color)
		dc.SetLineWidth(b.LineWidth)
		dc.DrawRectangle(b.X, b.Y, b.W, b.H)
		dc.Stroke()
	}

	if l := in.Label; l.Text != "" {
		face, err := r.face(l)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetHexColor(l.Color)
		dc.DrawStringAnchored(l.Text, l.X, l.Y, 0.5, 0.5)
	}

	buf := new(bytes.Buffer)
	if err := dc.EncodePNG(buf); err != nil {
		return nil, fmt.Errorf("PNG エンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}
