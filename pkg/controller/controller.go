// Package controller は表紙フォームの入力検証・生成ワークフロー・ダウンロードをまとめます。
//
// 状態遷移は Idle → (検証) → Loading → Succeeded / Failed で、どの状態からでも
// 利用者の操作で再び検証に戻れます。例外は Loading 中で、この間の再送信は拒否します。
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
	"github.com/sheetssend-cloud/tewtest/pkg/generator"
	"github.com/sheetssend-cloud/tewtest/pkg/state"
)

// ValidationMessage は必須項目が欠けているときに表示する固定文言です。
const ValidationMessage = "กรุณากรอกข้อมูลตำแหน่งและหน่วยงานให้ครบถ้วน"

// ErrGenerationInProgress は生成中に再度送信された場合のエラーです。状態は変わりません。
var ErrGenerationInProgress = errors.New("generation already in progress")

// Controller はフォームと生成状態の 2 つのストアを所有し、利用者の操作を反映します。
type Controller struct {
	form      *state.FormStore
	gen       *state.GenerationStore
	generator generator.CoverGenerator

	mu       sync.Mutex
	inFlight bool
}

// New は Controller を作成します。logo が空でも作成できますが、その場合送信は検証で失敗します。
func New(gen generator.CoverGenerator, logo domain.ImageData) (*Controller, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	c := &Controller{
		form:      state.NewFormStore(),
		gen:       state.NewGenerationStore(),
		generator: gen,
	}
	if !logo.IsZero() {
		if err := c.form.SetField(domain.FieldLogoData, logo.String()); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetField はフォームの 1 項目を更新します。
func (c *Controller) SetField(name, value string) error {
	return c.form.SetField(name, value)
}

// Form は現在のフォーム内容を返します。
func (c *Controller) Form() domain.CoverFormData {
	return c.form.Snapshot()
}

// State は現在の生成状態を返します。
func (c *Controller) State() domain.GenerationState {
	return c.gen.Snapshot()
}

// Subscribe は生成状態の変化を購読します。
func (c *Controller) Subscribe(fn state.Listener) (unsubscribe func()) {
	return c.gen.Subscribe(fn)
}

// InFlight は生成リクエストが実行中かどうかを返します。
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// ClearError はエラー表示だけを消します。生成は行いません。
func (c *Controller) ClearError() domain.GenerationState {
	c.gen.ClearError()
	return c.gen.Snapshot()
}

// Submit は現在のフォーム内容で表紙を生成します。
// 必須項目が欠けていれば生成クライアントを呼ばずに Failed にします。
// 生成の失敗はすべて GenerationState.Error に変換され、戻り値のエラーにはなりません。
func (c *Controller) Submit(ctx context.Context) (domain.GenerationState, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return c.gen.Snapshot(), ErrGenerationInProgress
	}

	form := c.form.Snapshot()
	if err := validate(form); err != nil {
		// Fail はロック内で行う。解放後だと別の送信の BeginLoading を上書きしてしまう。
		c.gen.Fail(ValidationMessage)
		st := c.gen.Snapshot()
		c.mu.Unlock()
		slog.InfoContext(ctx, "入力が不足しているため生成しません", "error", err)
		return st, nil
	}

	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	c.gen.BeginLoading()

	image, err := c.generate(ctx, form)
	switch {
	case err != nil:
		c.gen.Fail(err.Error())
	case image.IsZero():
		c.gen.Fail("ไม่พบภาพในผลลัพธ์จากบริการสร้างภาพ")
	default:
		c.gen.Succeed(image)
	}
	return c.gen.Snapshot(), nil
}

// Regenerate は同じフォーム内容で再度生成します。毎回新しいリクエストになります。
func (c *Controller) Regenerate(ctx context.Context) (domain.GenerationState, error) {
	return c.Submit(ctx)
}

// generate は生成クライアントを 1 回だけ呼び出します。panic もエラーに変換します。
func (c *Controller) generate(ctx context.Context, form domain.CoverFormData) (image domain.ImageData, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "生成クライアントが panic しました", "panic", r)
			image, err = "", fmt.Errorf("เกิดข้อผิดพลาดที่ไม่คาดคิด: %v", r)
		}
	}()
	return c.generator.GenerateCover(ctx, form.LogoData, form.Position, form.Organization, form.ColorTone)
}

type fieldError struct {
	fields []string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.fields)
}

func validate(form domain.CoverFormData) error {
	var missing []string
	if form.LogoData.IsZero() {
		missing = append(missing, domain.FieldLogoData)
	}
	if form.Position == "" {
		missing = append(missing, domain.FieldPosition)
	}
	if form.Organization == "" {
		missing = append(missing, domain.FieldOrganization)
	}
	if len(missing) > 0 {
		return &fieldError{fields: missing}
	}
	return nil
}
