package domain

// フォームのフィールド名です。SetField で受け付けるのはこの 4 つだけです。
const (
	FieldPosition     = "position"
	FieldOrganization = "organization"
	FieldColorTone    = "colorTone"
	FieldLogoData     = "logoData"
)

// CoverFormData は表紙フォームの入力値を保持します。
type CoverFormData struct {
	Position     string    `json:"position"`
	Organization string    `json:"organization"`
	ColorTone    string    `json:"colorTone"`
	LogoData     ImageData `json:"logoData,omitempty"` // 起動時に一度だけ設定される
}

// GenerationState は直近（または実行中）の生成リクエストの状態です。
// Error と ImageURL が同時に設定されることはありません。
type GenerationState struct {
	IsLoading bool      `json:"isLoading"`
	Error     string    `json:"error,omitempty"`
	ImageURL  ImageData `json:"imageUrl,omitempty"`
}

// HasImage は生成済み画像があるかどうかを返します。
func (s GenerationState) HasImage() bool {
	return !s.ImageURL.IsZero()
}
