// examcover は職位名と組織名から試験対策本の表紙画像を生成します。
//
// Usage:
//
//	examcover serve [-addr :8080]
//	examcover generate -position <name> -organization <name> [-color-tone <tone>] [-out <file>]
//	examcover logo [-out logo.png]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheetssend-cloud/tewtest/pkg/adapters"
	"github.com/sheetssend-cloud/tewtest/pkg/config"
	"github.com/sheetssend-cloud/tewtest/pkg/controller"
	"github.com/sheetssend-cloud/tewtest/pkg/domain"
	"github.com/sheetssend-cloud/tewtest/pkg/generator"
	"github.com/sheetssend-cloud/tewtest/pkg/imgutil"
	"github.com/sheetssend-cloud/tewtest/pkg/logo"
	"github.com/sheetssend-cloud/tewtest/pkg/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	slog.SetDefault(cfg.NewLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "serve":
		err = runServe(ctx, cfg, os.Args[2:])
	case "generate":
		err = runGenerate(ctx, cfg, os.Args[2:])
	case "logo":
		err = runLogo(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.HTTPAddr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctrl, err := newController(ctx, cfg)
	if err != nil {
		return err
	}
	srv, err := server.New(ctrl)
	if err != nil {
		return err
	}
	return srv.Run(ctx, *addr)
}

func runGenerate(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	position := fs.String("position", "", "job position (required)")
	organization := fs.String("organization", "", "organization name (required)")
	colorTone := fs.String("color-tone", "", "color tone; empty to infer from the organization")
	out := fs.String("out", "", "output file (default: derived from the position)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctrl, err := newController(ctx, cfg)
	if err != nil {
		return err
	}
	for name, value := range map[string]string{
		domain.FieldPosition:     *position,
		domain.FieldOrganization: *organization,
		domain.FieldColorTone:    *colorTone,
	} {
		if err := ctrl.SetField(name, value); err != nil {
			return err
		}
	}

	st, err := ctrl.Submit(ctx)
	if err != nil {
		return err
	}
	if st.Error != "" {
		return errors.New(st.Error)
	}

	d, ok, err := ctrl.Download()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no image was generated")
	}

	path := *out
	if path == "" {
		path = d.Filename
	}
	if err := os.WriteFile(path, d.Data, 0o644); err != nil {
		return fmt.Errorf("画像の保存に失敗しました: %w", err)
	}
	slog.Info("表紙画像を保存しました", "path", path, "bytes", len(d.Data))
	return nil
}

func runLogo(args []string) error {
	fs := flag.NewFlagSet("logo", flag.ExitOnError)
	out := fs.String("out", "logo.png", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	uri, err := logo.DefaultLogo(logo.NewGGRenderer())
	if err != nil {
		return err
	}
	_, data, err := imgutil.DecodeDataURI(uri.String())
	if err != nil {
		return err
	}
	return os.WriteFile(*out, data, 0o644)
}

// newController は既定ロゴと Gemini クライアントを組み立てて Controller を返します。
// ロゴの描画に失敗した場合は未設定のまま続行し、送信時の検証で止めます。
func newController(ctx context.Context, cfg *config.Config) (*controller.Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model, err := adapters.NewGenAIModel(ctx, cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	core, err := generator.NewGeminiImageCore(model)
	if err != nil {
		return nil, err
	}
	gen, err := generator.NewGeminiGenerator(core, cfg.Model, cfg.AspectRatio)
	if err != nil {
		return nil, err
	}

	logoData, err := logo.DefaultLogo(logo.NewGGRenderer())
	if err != nil {
		slog.WarnContext(ctx, "既定ロゴを用意できませんでした。生成は検証で拒否されます", "error", err)
	}
	return controller.New(gen, logoData)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  examcover serve [-addr :8080]
  examcover generate -position <name> -organization <name> [-color-tone <tone>] [-out <file>]
  examcover logo [-out logo.png]`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
