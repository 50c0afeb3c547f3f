package generator

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
	"github.com/sheetssend-cloud/tewtest/pkg/imgutil"
	"google.golang.org/genai"
)

var (
	errEmptyResponse = errors.New("empty response")
	errNoImage       = errors.New("no image data")
)

// prepareLogoPart はロゴの data URI を InlineData パーツに変換します。
func (c *GeminiImageCore) prepareLogoPart(logo domain.ImageData) (*genai.Part, error) {
	_, data, err := imgutil.DecodeDataURI(logo.String())
	if err != nil {
		return nil, newGenerationError(err, "ข้อมูลโลโก้ไม่ถูกต้อง")
	}
	part := c.toPart(data)
	if part == nil {
		return nil, newGenerationError(nil, "ข้อมูลโลโก้ไม่ใช่ไฟล์ภาพ")
	}
	return part, nil
}

// toPart はバイト列を genai.Part (InlineData) に変換します。画像でなければ nil を返します。
func (c *GeminiImageCore) toPart(data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// parseToResponse は最初の候補から画像パーツを探します。
// 画像が空、または画像として解釈できないペイロードは失敗として扱います。
func (c *GeminiImageCore) parseToResponse(resp *genai.GenerateContentResponse) (*ImageOutput, error) {
	if resp == nil {
		return nil, newGenerationError(errEmptyResponse, "ไม่ได้รับผลลัพธ์จากบริการสร้างภาพ")
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, newGenerationError(nil, "คำขอถูกปฏิเสธโดยบริการสร้างภาพ (%s)", fb.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, newGenerationError(errEmptyResponse, "ไม่ได้รับผลลัพธ์จากบริการสร้างภาพ")
	}

	// 最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			data := part.InlineData.Data
			mimeType := part.InlineData.MIMEType
			if detected := http.DetectContentType(data); strings.HasPrefix(detected, "image/") {
				mimeType = detected
			} else if !strings.HasPrefix(mimeType, "image/") {
				continue
			}
			return &ImageOutput{Data: data, MimeType: mimeType}, nil
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop && candidate.FinishReason != "" {
		return nil, newGenerationError(nil, "การสร้างภาพหยุดกลางคัน (FinishReason: %s)", candidate.FinishReason)
	}

	return nil, newGenerationError(errNoImage, "ไม่พบภาพในผลลัพธ์จากบริการสร้างภาพ")
}
