package server

import (
	"context"
	"errors"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
)

type mockGenerator struct {
	image   domain.ImageData
	err     error
	calls   int
	block   chan struct{}
	started chan struct{}

	// 最後の呼び出しで受け取った入力値
	position, organization, colorTone string
}

func (m *mockGenerator) GenerateCover(ctx context.Context, logo domain.ImageData, position, organization, colorTone string) (domain.ImageData, error) {
	m.calls++
	m.position, m.organization, m.colorTone = position, organization, colorTone
	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
	if m.err != nil {
		return "", m.err
	}
	if m.image.IsZero() {
		return "", errors.New("no image")
	}
	return m.image, nil
}
