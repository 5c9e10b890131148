package hud

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tonkatsuu/agriconnect-beta/overlay"
)

// TestRedrawMemoization 验证重绘契约：参数未变化时不重算，
// 任一参数变化后恰好重算一次。
func TestRedrawMemoization(t *testing.T) {
	frames := 0
	s := NewSurface(Options{
		Sink: func(frame *overlay.Frame, data []byte) { frames++ },
	})
	s.SetViewport(overlay.Viewport{Width: 400, Height: 800})
	s.SetSpacing(30)
	s.SetVisible(true)

	if !s.Redraw() {
		t.Fatalf("首次重绘应产出新帧")
	}
	if s.Redraw() || s.Redraw() {
		t.Fatalf("参数未变化时不应重算")
	}
	if frames != 1 {
		t.Fatalf("期望 1 帧，实际 %d", frames)
	}

	s.SetSpacing(40)
	if !s.Redraw() {
		t.Fatalf("间距变化后应重算")
	}
	s.SetVisible(false)
	if !s.Redraw() {
		t.Fatalf("可见性变化后应重算")
	}
	s.SetViewport(overlay.Viewport{Width: 800, Height: 400})
	if !s.Redraw() {
		t.Fatalf("视口变化后应重算")
	}
	if frames != 4 {
		t.Fatalf("期望 4 帧，实际 %d", frames)
	}
}

func TestRedrawInvisibleEmitsEmptyFrame(t *testing.T) {
	var got *overlay.Frame
	s := NewSurface(Options{
		Sink: func(frame *overlay.Frame, data []byte) { got = frame },
	})
	s.SetViewport(overlay.Viewport{Width: 400, Height: 800})
	s.SetSpacing(30)
	// visible 默认 false
	s.Redraw()
	if got == nil {
		t.Fatalf("不可见时仍应产出（空）帧")
	}
	if len(got.Primitives) != 0 {
		t.Fatalf("不可见帧不应携带图元，实际 %d 个", len(got.Primitives))
	}
}

func TestSetSpacingClampsToRange(t *testing.T) {
	s := NewSurface(Options{})
	s.SetSpacing(5)
	if got := s.Spacing(); got != overlay.MinSpacingCm {
		t.Fatalf("间距应钳制到下限 %g，实际 %g", overlay.MinSpacingCm, got)
	}
	s.SetSpacing(500)
	if got := s.Spacing(); got != overlay.MaxSpacingCm {
		t.Fatalf("间距应钳制到上限 %g，实际 %g", overlay.MaxSpacingCm, got)
	}
}

// TestTickerLifecycle 验证定时任务随 Stop 回收，且运行期间按参数变化出帧。
func TestTickerLifecycle(t *testing.T) {
	var frames atomic.Int64
	s := NewSurface(Options{
		Interval: time.Millisecond,
		Sink:     func(frame *overlay.Frame, data []byte) { frames.Add(1) },
	})
	s.SetViewport(overlay.Viewport{Width: 400, Height: 800})
	s.SetSpacing(30)
	s.SetVisible(true)

	s.Start(context.Background())

	deadline := time.Now().Add(time.Second)
	for frames.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if frames.Load() == 0 {
		t.Fatalf("定时任务未产出任何帧")
	}

	s.Stop()
	after := frames.Load()
	// 停止后参数变化不应再触发任何帧
	s.SetSpacing(55)
	time.Sleep(20 * time.Millisecond)
	if frames.Load() != after {
		t.Fatalf("Stop 之后定时任务仍在产帧")
	}
	// 重复 Stop 应为空操作
	s.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	s := NewSurface(Options{})
	s.Stop() // 不应恐慌或阻塞
}
