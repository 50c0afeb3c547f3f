// Package server は表紙フォームの画面と JSON API を HTTP で提供します。
// 画面は GenerationState の変化を server-sent events で受け取り、再描画します。
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sheetssend-cloud/tewtest/pkg/controller"
)

//go:embed web/*
var webContent embed.FS

const shutdownTimeout = 5 * time.Second

// Server は Controller を HTTP に公開します。
type Server struct {
	ctrl   *controller.Controller
	engine *gin.Engine
}

// New はルーティング済みの Server を返します。
func New(ctrl *controller.Controller) (*Server, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("controller is required")
	}

	tmpl, err := template.ParseFS(webContent, "web/*.html")
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗しました: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.SetHTMLTemplate(tmpl)

	s := &Server{ctrl: ctrl, engine: engine}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)

	api := s.engine.Group("/api")
	api.GET("/state", s.handleState)
	api.GET("/logo", s.handleLogo)
	api.PUT("/form/:field", s.handleSetField)
	api.POST("/generate", s.handleGenerate)
	api.POST("/clear-error", s.handleClearError)
	api.GET("/download", s.handleDownload)
	api.GET("/events", s.handleEvents)
}

// Handler は http.Handler としての Server を返します。
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run は addr で待ち受け、ctx がキャンセルされたら停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTPサーバーを起動します", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		slog.Info("HTTPサーバーを停止します")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}
