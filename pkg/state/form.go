package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
)

// ErrUnknownField は FormStore が扱わないフィールド名を指定した場合のエラーです。
var ErrUnknownField = errors.New("unknown form field")

// FormStore はフォームの 4 項目を保持するだけの状態コンテナです。検証は行いません。
type FormStore struct {
	mu   sync.RWMutex
	data domain.CoverFormData
}

// NewFormStore は空のフォームを返します。
func NewFormStore() *FormStore {
	return &FormStore{}
}

// SetField は名前で指定された 1 項目だけを更新します。
func (s *FormStore) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case domain.FieldPosition:
		s.data.Position = value
	case domain.FieldOrganization:
		s.data.Organization = value
	case domain.FieldColorTone:
		s.data.ColorTone = value
	case domain.FieldLogoData:
		s.data.LogoData = domain.ImageData(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Snapshot は現在のフォーム内容のコピーを返します。
func (s *FormStore) Snapshot() domain.CoverFormData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}
