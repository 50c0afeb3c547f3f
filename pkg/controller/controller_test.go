package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
	"github.com/sheetssend-cloud/tewtest/pkg/imgutil"
	"github.com/sheetssend-cloud/tewtest/pkg/state"
)

var (
	testLogo   = domain.ImageData(imgutil.EncodeDataURI(imgutil.MimePNG, []byte("\x89PNG\r\n\x1a\nlogo")))
	coverOne   = domain.ImageData(imgutil.EncodeDataURI(imgutil.MimePNG, []byte("\x89PNG\r\n\x1a\none")))
	coverTwo   = domain.ImageData(imgutil.EncodeDataURI(imgutil.MimePNG, []byte("\x89PNG\r\n\x1a\ntwo")))
	background = context.Background()
)

func newController(t *testing.T, gen *mockGenerator, logo domain.ImageData) *Controller {
	t.Helper()
	c, err := New(gen, logo)
	require.NoError(t, err)
	return c
}

func fill(t *testing.T, c *Controller, position, organization, colorTone string) {
	t.Helper()
	require.NoError(t, c.SetField(domain.FieldPosition, position))
	require.NoError(t, c.SetField(domain.FieldOrganization, organization))
	require.NoError(t, c.SetField(domain.FieldColorTone, colorTone))
}

// record は通知された状態遷移をすべて記録します。
func record(c *Controller) *[]domain.GenerationState {
	var seen []domain.GenerationState
	c.Subscribe(func(s domain.GenerationState) { seen = append(seen, s) })
	return &seen
}

func TestNew(t *testing.T) {
	_, err := New(nil, testLogo)
	assert.Error(t, err)

	c := newController(t, &mockGenerator{}, testLogo)
	assert.Equal(t, testLogo, c.Form().LogoData)
	assert.Equal(t, domain.GenerationState{}, c.State())
}

func TestController_Submit(t *testing.T) {
	t.Run("成功: 4 つの引数でちょうど 1 回呼ばれ、画像が設定される", func(t *testing.T) {
		gen := &mockGenerator{results: []domain.ImageData{coverOne}}
		c := newController(t, gen, testLogo)
		fill(t, c, "Clerk", "District Court", "")
		seen := record(c)

		st, err := c.Submit(background)

		require.NoError(t, err)
		require.Equal(t, 1, gen.callCount())
		assert.Equal(t, generateArgs{testLogo, "Clerk", "District Court", ""}, gen.calls[0])
		assert.Equal(t, domain.GenerationState{ImageURL: coverOne}, st)
		assert.Equal(t, []domain.GenerationState{
			{IsLoading: true},
			{ImageURL: coverOne},
		}, *seen)
	})

	t.Run("検証エラー: 職位が空なら呼ばずに固定メッセージ", func(t *testing.T) {
		gen := &mockGenerator{results: []domain.ImageData{coverOne}}
		c := newController(t, gen, testLogo)
		fill(t, c, "", "District Court", "")

		st, err := c.Submit(background)

		require.NoError(t, err)
		assert.Zero(t, gen.callCount())
		assert.Equal(t, domain.GenerationState{Error: ValidationMessage}, st)
	})

	t.Run("検証エラー: 組織名が空", func(t *testing.T) {
		gen := &mockGenerator{}
		c := newController(t, gen, testLogo)
		fill(t, c, "Clerk", "", "red")

		st, _ := c.Submit(background)

		assert.Zero(t, gen.callCount())
		assert.Equal(t, ValidationMessage, st.Error)
	})

	t.Run("検証エラー: ロゴが無い（描画面が無かった）", func(t *testing.T) {
		gen := &mockGenerator{}
		c := newController(t, gen, "")
		fill(t, c, "Clerk", "Court", "")

		st, _ := c.Submit(background)

		assert.Zero(t, gen.callCount())
		assert.Equal(t, ValidationMessage, st.Error)
	})

	t.Run("検証エラーは前回の画像も消す", func(t *testing.T) {
		gen := &mockGenerator{results: []domain.ImageData{coverOne}}
		c := newController(t, gen, testLogo)
		fill(t, c, "Clerk", "Court", "")
		_, _ = c.Submit(background)

		require.NoError(t, c.SetField(domain.FieldPosition, ""))
		st, _ := c.Submit(background)

		assert.Equal(t, domain.GenerationState{Error: ValidationMessage}, st)
	})

	t.Run("失敗: クライアントのメッセージがそのまま表示される", func(t *testing.T) {
		gen := &mockGenerator{err: errors.New("service unavailable")}
		c := newController(t, gen, testLogo)
		fill(t, c, "Clerk", "Court", "")

		st, err := c.Submit(background)

		require.NoError(t, err)
		assert.Equal(t, "service unavailable", st.Error)
		assert.Empty(t, st.ImageURL)
		assert.False(t, st.IsLoading)
	})

	t.Run("失敗: 空の画像は失敗扱い", func(t *testing.T) {
		gen := &mockGenerator{}
		c := newController(t, gen, testLogo)
		fill(t, c, "Clerk", "Court", "")

		st, _ := c.Submit(background)

		assert.NotEmpty(t, st.Error)
		assert.False(t, st.HasImage())
	})

	t.Run("失敗: panic も Error に変換される", func(t *testing.T) {
		gen := &mockGenerator{panicV: "boom"}
		c := newController(t, gen, testLogo)
		fill(t, c, "Clerk", "Court", "")

		st, err := c.Submit(background)

		require.NoError(t, err)
		assert.Contains(t, st.Error, "boom")
		assert.False(t, st.IsLoading)
		assert.False(t, c.InFlight())
	})
}

func TestController_ClearError(t *testing.T) {
	gen := &mockGenerator{err: errors.New("service unavailable")}
	c := newController(t, gen, testLogo)
	fill(t, c, "Clerk", "Court", "")
	_, _ = c.Submit(background)
	require.Equal(t, 1, gen.callCount())

	st := c.ClearError()

	assert.Equal(t, domain.GenerationState{}, st)
	assert.Equal(t, 1, gen.callCount(), "ClearError で再生成してはいけない")
	assert.Equal(t, "Clerk", c.Form().Position)
}

func TestController_Regenerate(t *testing.T) {
	gen := &mockGenerator{results: []domain.ImageData{coverOne, coverTwo}}
	c := newController(t, gen, testLogo)
	fill(t, c, "Clerk", "Court", "")

	st, err := c.Submit(background)
	require.NoError(t, err)
	require.Equal(t, coverOne, st.ImageURL)

	seen := record(c)
	st, err = c.Regenerate(background)

	require.NoError(t, err)
	assert.Equal(t, 2, gen.callCount())
	assert.Equal(t, gen.calls[0], gen.calls[1])
	assert.Equal(t, coverTwo, st.ImageURL)
	assert.Equal(t, []domain.GenerationState{
		{IsLoading: true},
		{ImageURL: coverTwo},
	}, *seen)
}

func TestController_RejectsConcurrentSubmit(t *testing.T) {
	gen := &mockGenerator{
		results: []domain.ImageData{coverOne},
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	c := newController(t, gen, testLogo)
	fill(t, c, "Clerk", "Court", "")

	done := make(chan domain.GenerationState)
	go func() {
		st, _ := c.Submit(background)
		done <- st
	}()
	<-gen.started

	assert.True(t, c.InFlight())
	assert.Equal(t, domain.GenerationState{IsLoading: true}, c.State())

	st, err := c.Submit(background)
	assert.ErrorIs(t, err, ErrGenerationInProgress)
	assert.True(t, st.IsLoading)

	close(gen.block)
	final := <-done

	assert.Equal(t, 1, gen.callCount())
	assert.Equal(t, domain.GenerationState{ImageURL: coverOne}, final)
	assert.False(t, c.InFlight())
}

func TestController_ValidationFailureDoesNotOverwriteLoading(t *testing.T) {
	// 検証エラーの送信と正しい送信が同時に走っても、生成中は必ず loading のまま
	for i := 0; i < 50; i++ {
		gen := &mockGenerator{
			results: []domain.ImageData{coverOne},
			block:   make(chan struct{}),
			started: make(chan struct{}, 2),
		}
		c := newController(t, gen, testLogo)
		require.NoError(t, c.SetField(domain.FieldOrganization, "Court"))

		done := make(chan struct{}, 2)
		go func() {
			_, _ = c.Submit(background)
			done <- struct{}{}
		}()
		go func() {
			_ = c.SetField(domain.FieldPosition, "Clerk")
			_, _ = c.Submit(background)
			done <- struct{}{}
		}()

		<-gen.started
		<-done // 生成中でない方の送信が終わるのを待つ

		require.True(t, c.InFlight())
		require.Equal(t, domain.GenerationState{IsLoading: true}, c.State(), "iteration %d", i)

		close(gen.block)
		<-done
		assert.Equal(t, domain.GenerationState{ImageURL: coverOne}, c.State())
		assert.Equal(t, 1, gen.callCount())
	}
}

func TestController_Invariants(t *testing.T) {
	gen := &mockGenerator{results: []domain.ImageData{coverOne}}
	c := newController(t, gen, testLogo)
	seen := record(c)

	_, _ = c.Submit(background) // 検証エラー
	fill(t, c, "Clerk", "Court", "")
	_, _ = c.Submit(background)
	gen.err = errors.New("x")
	_, _ = c.Submit(background)
	c.ClearError()

	require.NotEmpty(t, *seen)
	for _, st := range *seen {
		assert.False(t, st.Error != "" && st.HasImage(), "%+v", st)
		if st.IsLoading {
			assert.Empty(t, st.Error)
			assert.Empty(t, st.ImageURL)
		}
	}
}

func TestController_SetField(t *testing.T) {
	c := newController(t, &mockGenerator{}, testLogo)
	assert.ErrorIs(t, c.SetField("nope", "x"), state.ErrUnknownField)
}
