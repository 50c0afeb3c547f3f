package generator

const (
	DefaultModel       = "gemini-3-pro-image-preview"
	DefaultAspectRatio = "3:4"
)

// ImageOptions は 1 回の生成リクエストに付けるオプションです。
type ImageOptions struct {
	AspectRatio  string
	SystemPrompt string
}

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
}
