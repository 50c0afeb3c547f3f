package imgutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const MimePNG = "image/png"

const dataURIPrefix = "data:"

// ErrInvalidDataURI は base64 形式の data URI として解釈できない場合のエラーです。
var ErrInvalidDataURI = errors.New("invalid data URI")

// EncodeDataURI はバイト列を data:<mime>;base64,<payload> 形式に変換します。
func EncodeDataURI(mimeType string, data []byte) string {
	return dataURIPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI は data URI から MIME タイプとバイト列を取り出します。
// base64 エンコードされたものだけを受け付けます。
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, dataURIPrefix), ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}

	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: base64 以外のエンコーディングです", ErrInvalidDataURI)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%w: 空のペイロードです", ErrInvalidDataURI)
	}
	return mimeType, data, nil
}
