package domain

import "strings"

// ImageData は画像をそのまま埋め込める data URI 形式 (data:<mime>;base64,...) の文字列です。
// 空文字列は「未設定」を表します。
type ImageData string

// IsZero は画像が未設定かどうかを返します。
func (d ImageData) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

// String は data URI をそのまま返します。
func (d ImageData) String() string {
	return string(d)
}

// CoverRequest は表紙画像の単一生成要求です。
type CoverRequest struct {
	Logo         ImageData
	Position     string
	Organization string
	ColorTone    string // 空なら組織名から配色を推定させる
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
}
