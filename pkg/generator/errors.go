package generator

import "fmt"

// GenerationError は表紙生成の失敗を表します。
// Error() はそのまま利用者に表示できる文言を返し、原因は Unwrap で取り出せます。
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func newGenerationError(err error, format string, args ...any) *GenerationError {
	return &GenerationError{Message: fmt.Sprintf(format, args...), Err: err}
}
