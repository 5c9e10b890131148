package scenario

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tonkatsuu/agriconnect-beta/alert"
	"github.com/tonkatsuu/agriconnect-beta/hud"
	"github.com/tonkatsuu/agriconnect-beta/overlay"
)

func overlayViewport(v *ViewportStmt) overlay.Viewport {
	return overlay.Viewport{Width: v.Width, Height: v.Height}
}

// Runner 按语句顺序执行场景：驱动宿主表面的参数三元组、落盘帧快照、
// 触发警报分发。分发器与表面由调用方显式注入，Runner 不持有全局状态。
type Runner struct {
	dispatcher *alert.Dispatcher
	surface    *hud.Surface
	outDir     string
	data       any
	log        zerolog.Logger
}

// RunnerOptions 配置 Runner 的依赖。Dispatcher 与 Surface 必填。
type RunnerOptions struct {
	Dispatcher *alert.Dispatcher
	Surface    *hud.Surface
	OutDir     string // 帧快照输出目录，空串表示当前目录
	Data       any    // 绑定到警报消息占位符的 JSON 数据
	Log        *zerolog.Logger
}

// NewRunner 构造场景执行器。
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Dispatcher == nil {
		return nil, fmt.Errorf("scenario: 缺少警报分发器")
	}
	if opts.Surface == nil {
		return nil, fmt.Errorf("scenario: 缺少宿主表面")
	}
	r := &Runner{
		dispatcher: opts.Dispatcher,
		surface:    opts.Surface,
		outDir:     opts.OutDir,
		data:       opts.Data,
		log:        zerolog.Nop(),
	}
	if opts.Log != nil {
		r.log = *opts.Log
	}
	return r, nil
}

// Run 执行整个场景。重绘定时任务在执行期间保持运行，结束时保证回收。
func (r *Runner) Run(ctx context.Context, scene *Scene) error {
	if scene == nil {
		return fmt.Errorf("scenario: 场景为空")
	}
	r.log.Info().Str("scene", scene.Name).Int("statements", len(scene.Statements)).Msg("场景开始")

	r.surface.Start(ctx)
	defer r.surface.Stop()

	for _, stmt := range scene.Statements {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.exec(ctx, stmt); err != nil {
			return err
		}
	}

	r.log.Info().Str("scene", scene.Name).Msg("场景结束")
	return nil
}

func (r *Runner) exec(ctx context.Context, stmt *Statement) error {
	switch {
	case stmt.Viewport != nil:
		r.surface.SetViewport(overlayViewport(stmt.Viewport))
	case stmt.Spacing != nil:
		r.surface.SetSpacing(stmt.Spacing.Cm)
	case stmt.Visible != nil:
		r.surface.SetVisible(stmt.Visible.On())
	case stmt.Frame != nil:
		return r.captureFrame(string(stmt.Frame.Name))
	case stmt.Alert != nil:
		return r.triggerAlert(ctx, stmt.Alert)
	case stmt.Wait != nil:
		return r.wait(ctx, stmt.Wait.Duration)
	default:
		return fmt.Errorf("scenario: 未知语句类型 %q", stmt.Kind())
	}
	return nil
}

// captureFrame 立即渲染一帧并写入输出目录。
func (r *Runner) captureFrame(name string) error {
	frame, data, err := r.surface.Snapshot()
	if err != nil {
		return fmt.Errorf("帧 %s 渲染失败: %w", name, err)
	}
	path := filepath.Join(r.outDir, name)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建帧输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入帧 %s 失败: %w", name, err)
	}
	r.log.Info().Str("frame", name).Int("primitives", len(frame.Primitives)).Msg("帧已落盘")
	return nil
}

// triggerAlert 把脚本里的警报语句转为一次分发。
// 协作方失败不致命（已由分发器隔离并记录），空消息等非法入参才报错。
func (r *Runner) triggerAlert(ctx context.Context, stmt *AlertStmt) error {
	severity, err := alert.ParseSeverity(stmt.Severity)
	if err != nil {
		return fmt.Errorf("%s: %w", stmt.Pos, err)
	}
	mode, err := alert.ParseAudioMode(stmt.Mode)
	if err != nil {
		return fmt.Errorf("%s: %w", stmt.Pos, err)
	}

	message := Expand(string(stmt.Message), r.data)
	out, err := r.dispatcher.Dispatch(ctx, alert.Request{
		Severity:  severity,
		Message:   message,
		AudioMode: mode,
	})
	if err != nil {
		return fmt.Errorf("%s: 警报分发被拒绝: %w", stmt.Pos, err)
	}
	if failed := out.Failed(); len(failed) > 0 {
		r.log.Warn().Str("dispatch_id", out.ID).Int("failed", len(failed)).Msg("部分警报子请求失败")
	}
	return nil
}

func (r *Runner) wait(ctx context.Context, raw string) error {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("scenario: 非法等待时长 %q: %w", raw, err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
