package controller

import (
	"context"
	"sync"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
)

type generateArgs struct {
	logo         domain.ImageData
	position     string
	organization string
	colorTone    string
}

// mockGenerator は generator.CoverGenerator のテスト用モックです。
type mockGenerator struct {
	mu    sync.Mutex
	calls []generateArgs

	// results は呼び出しごとに順番に返す画像です。足りなければ最後のものを使います。
	results []domain.ImageData
	err     error
	panicV  any

	// block が設定されていれば、閉じられるまで結果を返しません。
	block   chan struct{}
	started chan struct{}
}

func (m *mockGenerator) GenerateCover(ctx context.Context, logo domain.ImageData, position, organization, colorTone string) (domain.ImageData, error) {
	m.mu.Lock()
	m.calls = append(m.calls, generateArgs{logo, position, organization, colorTone})
	n := len(m.calls)
	m.mu.Unlock()

	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
	if m.panicV != nil {
		panic(m.panicV)
	}
	if m.err != nil {
		return "", m.err
	}
	if len(m.results) == 0 {
		return "", nil
	}
	if n > len(m.results) {
		n = len(m.results)
	}
	return m.results[n-1], nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
