package server

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sheetssend-cloud/tewtest/pkg/controller"
	"github.com/sheetssend-cloud/tewtest/pkg/domain"
	"github.com/sheetssend-cloud/tewtest/pkg/imgutil"
	"github.com/sheetssend-cloud/tewtest/pkg/logo"
	"github.com/sheetssend-cloud/tewtest/pkg/state"
)

// formView は画面に返すフォーム内容です。ロゴ本体は /api/logo で配信します。
type formView struct {
	Position     string `json:"position"`
	Organization string `json:"organization"`
	ColorTone    string `json:"colorTone"`
	HasLogo      bool   `json:"hasLogo"`
}

type stateResponse struct {
	Form       formView               `json:"form"`
	Generation domain.GenerationState `json:"generation"`
}

type setFieldRequest struct {
	Value string `json:"value"`
}

// generateRequest は送信時点の入力値です。指定された項目は生成前にフォームへ反映します。
type generateRequest struct {
	Position     *string `json:"position"`
	Organization *string `json:"organization"`
	ColorTone    *string `json:"colorTone"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) snapshot() stateResponse {
	f := s.ctrl.Form()
	return stateResponse{
		Form: formView{
			Position:     f.Position,
			Organization: f.Organization,
			ColorTone:    f.ColorTone,
			HasLogo:      !f.LogoData.IsZero(),
		},
		Generation: s.ctrl.State(),
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Brand": logo.BrandLabel,
		"State": s.snapshot(),
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleLogo(c *gin.Context) {
	_, data, err := imgutil.DecodeDataURI(s.ctrl.Form().LogoData.String())
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: "logo is not available"})
		return
	}
	c.Data(http.StatusOK, imgutil.MimePNG, data)
}

func (s *Server) handleSetField(c *gin.Context) {
	field := c.Param("field")
	if field == domain.FieldLogoData {
		c.JSON(http.StatusForbidden, errorResponse{Error: "logoData is read-only"})
		return
	}

	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := s.ctrl.SetField(field, req.Value); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, state.ErrUnknownField) {
			status = http.StatusBadRequest
		}
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleGenerate(c *gin.Context) {
	// 生成は途中でキャンセルしない。ブラウザが離れても結果は状態に反映する。
	ctx := context.WithoutCancel(c.Request.Context())

	if c.Request.ContentLength != 0 {
		var req generateRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := s.applyFields(req); err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
	}

	_, err := s.ctrl.Submit(ctx)
	if errors.Is(err, controller.ErrGenerationInProgress) {
		c.JSON(http.StatusConflict, s.snapshot())
		return
	}
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) applyFields(req generateRequest) error {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{domain.FieldPosition, req.Position},
		{domain.FieldOrganization, req.Organization},
		{domain.FieldColorTone, req.ColorTone},
	} {
		if f.value == nil {
			continue
		}
		if err := s.ctrl.SetField(f.name, *f.value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) handleClearError(c *gin.Context) {
	s.ctrl.ClearError()
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *Server) handleDownload(c *gin.Context) {
	d, ok, err := s.ctrl.Download()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "no generated image"})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename}))
	c.Data(http.StatusOK, d.MIMEType, d.Data)
}
