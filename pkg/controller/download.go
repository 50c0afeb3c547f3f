package controller

import (
	"fmt"
	"regexp"

	"github.com/sheetssend-cloud/tewtest/pkg/imgutil"
)

const (
	// DownloadPrefix はダウンロードファイル名の固定プレフィックス（「試験の表紙」）です。
	DownloadPrefix = "ปกสอบ"
	downloadExt    = ".png"
)

var whitespace = regexp.MustCompile(`\s+`)

// Download はローカル保存用のファイルです。
type Download struct {
	Filename string
	MIMEType string
	Data     []byte
}

// DownloadFilename は職位名の空白を _ に置き換えたファイル名を返します。
func DownloadFilename(position string) string {
	return DownloadPrefix + "_" + whitespace.ReplaceAllString(position, "_") + downloadExt
}

// Download は生成済み画像を PNG として返します。画像がなければ ok=false で何もしません。
func (c *Controller) Download() (Download, bool, error) {
	st := c.gen.Snapshot()
	if !st.HasImage() {
		return Download{}, false, nil
	}

	_, data, err := imgutil.DecodeDataURI(st.ImageURL.String())
	if err != nil {
		return Download{}, false, fmt.Errorf("生成画像を読み取れませんでした: %w", err)
	}
	data, err = imgutil.ToPNG(data)
	if err != nil {
		return Download{}, false, err
	}

	return Download{
		Filename: DownloadFilename(c.form.Snapshot().Position),
		MIMEType: imgutil.MimePNG,
		Data:     data,
	}, true, nil
}
