package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"

	_ "golang.org/x/image/webp"
)

// ToPNG は画像データ（PNG, GIF, JPEG, WebP）を PNG 形式に変換します。
// 入力が既に PNG であればデコードせずにそのまま返します。
func ToPNG(data []byte) ([]byte, error) {
	if http.DetectContentType(data) == MimePNG {
		return data, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("%s から PNG への変換に失敗しました: %w", format, err)
	}
	return buf.Bytes(), nil
}
