package server

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/sheetssend-cloud/tewtest/pkg/domain"
)

const eventState = "state"

// handleEvents は GenerationState の変化を server-sent events で送り続けます。
// 接続直後に現在の状態を 1 回送ります。
func (s *Server) handleEvents(c *gin.Context) {
	updates := make(chan domain.GenerationState, 8)
	unsubscribe := s.ctrl.Subscribe(func(st domain.GenerationState) {
		// 遅いクライアントのために Controller を待たせない。
		// 詰まっていたら最も古い通知を捨て、最新の状態は必ず残す。
		for {
			select {
			case updates <- st:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent(eventState, s.ctrl.State())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case st := <-updates:
			c.SSEvent(eventState, st)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
