package logo

import "errors"

type failingRenderer struct{}

func (failingRenderer) Render(Instructions) ([]byte, error) {
	return nil, errors.New("canvas lost")
}

type emptyRenderer struct{}

func (emptyRenderer) Render(Instructions) ([]byte, error) {
	return nil, nil
}

// recordingRenderer は受け取った描画命令を記録します。
type recordingRenderer struct {
	got []Instructions
}

func (r *recordingRenderer) Render(in Instructions) ([]byte, error) {
	r.got = append(r.got, in)
	return []byte("\x89PNG\r\n\x1a\n"), nil
}
