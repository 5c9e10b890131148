package hud

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tonkatsuu/agriconnect-beta/overlay"
	"github.com/tonkatsuu/agriconnect-beta/render"
)

// Surface 是叠加层的宿主：持有唯一的参数三元组（视口、间距、可见性），
// 以固定周期检查参数是否变化，只有变化时才重新生成并渲染一帧。
// 定时任务归属于 Surface 生命周期：Start 启动、Stop 保证回收，
// 不允许定时器泄漏到组件生命周期之外。

const defaultInterval = 16 * time.Millisecond // 约 60 帧/秒

// FrameSink 接收渲染完成的帧（图元与后端输出的图像数据）。
type FrameSink func(frame *overlay.Frame, data []byte)

// params 是一次重绘判定用的参数快照。
type params struct {
	vp        overlay.Viewport
	spacingCm float64
	visible   bool
}

// Surface 见包注释。
type Surface struct {
	renderer render.Renderer
	sink     FrameSink
	interval time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	current params
	last    *params // 上一次已渲染的参数快照，nil 表示尚未渲染过

	runMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Options 配置宿主表面。Renderer 必填；Sink 为空时帧被丢弃（仅重算）。
type Options struct {
	Renderer render.Renderer
	Sink     FrameSink
	Interval time.Duration
	Log      *zerolog.Logger
}

// NewSurface 构造宿主表面，初始间距取可用范围下限、默认不可见。
func NewSurface(opts Options) *Surface {
	s := &Surface{
		renderer: opts.Renderer,
		sink:     opts.Sink,
		interval: opts.Interval,
		log:      zerolog.Nop(),
		current: params{
			spacingCm: overlay.MinSpacingCm,
		},
	}
	if s.interval <= 0 {
		s.interval = defaultInterval
	}
	if opts.Log != nil {
		s.log = *opts.Log
	}
	return s
}

// SetViewport 更新视口（由相机侧在画面尺寸变化时调用）。
func (s *Surface) SetViewport(vp overlay.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.vp = vp
}

// SetSpacing 更新网格间距（cm），越界值按宿主控件规则钳制。
func (s *Surface) SetSpacing(spacingCm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.spacingCm = overlay.ClampSpacing(spacingCm)
}

// SetVisible 切换叠加层可见性。
func (s *Surface) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.visible = visible
}

// Spacing 返回当前间距（cm）。
func (s *Surface) Spacing() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.spacingCm
}

// Start 启动重绘定时任务。重复调用先停止旧任务再启动新任务。
func (s *Surface) Start(ctx context.Context) {
	s.Stop()

	s.runMu.Lock()
	defer s.runMu.Unlock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop(ctx)
	s.log.Debug().Dur("interval", s.interval).Msg("重绘任务已启动")
}

// Stop 停止重绘任务并等待其退出；未启动时为空操作。
func (s *Surface) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
	s.wg.Wait()
	s.log.Debug().Msg("重绘任务已停止")
}

func (s *Surface) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Redraw()
		}
	}
}

// Redraw 执行一次重绘判定：参数自上次渲染以来未变化则什么都不做
// （等价于 shouldRepaint 比较）；变化则整体重新生成图元并渲染。
// 返回本次是否实际产出了新帧。
func (s *Surface) Redraw() bool {
	s.mu.Lock()
	p := s.current
	dirty := s.last == nil || *s.last != p
	if dirty {
		snapshot := p
		s.last = &snapshot
	}
	s.mu.Unlock()
	if !dirty {
		return false
	}

	frame := overlay.NewFrame(p.vp, p.spacingCm, p.visible)

	var data []byte
	if s.renderer != nil && p.vp.Width > 0 && p.vp.Height > 0 {
		var err error
		data, err = s.renderer.Render(p.vp, frame.Primitives)
		if err != nil {
			// 渲染失败不致命：记录后丢帧，参数再变化时会重试。
			s.log.Warn().Err(err).Msg("帧渲染失败")
			return false
		}
	}
	if s.sink != nil {
		s.sink(frame, data)
	}
	return true
}

// Snapshot 无视重绘判定，按当前参数立即生成并渲染一帧返回给调用方。
// 同时刷新判定基准，避免随后的定时重绘重复渲染同一参数。
func (s *Surface) Snapshot() (*overlay.Frame, []byte, error) {
	s.mu.Lock()
	p := s.current
	snapshot := p
	s.last = &snapshot
	s.mu.Unlock()

	frame := overlay.NewFrame(p.vp, p.spacingCm, p.visible)
	if s.renderer == nil {
		return frame, nil, nil
	}
	data, err := s.renderer.Render(p.vp, frame.Primitives)
	if err != nil {
		return frame, nil, err
	}
	return frame, data, nil
}
