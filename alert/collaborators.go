package alert

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// 本文件定义分发器依赖的三类平台侧协作方接口。分发器不关心它们的
// 具体实现：真实宿主接平台 API，无头演示接日志实现，测试接 Nop/桩。

// BannerRequest 描述应用内横幅的展示内容。
type BannerRequest struct {
	Title    string
	Message  string
	Color    Color
	Duration time.Duration
}

// Banner 展示一条短暂、可手动关闭的应用内横幅；协作方不返回确认。
type Banner interface {
	Show(ctx context.Context, req BannerRequest) error
}

// NotificationRequest 描述一条系统通知。
// ID 为等级序号：重复触发同等级时顶替旧通知，而不是堆积。
type NotificationRequest struct {
	ID      int
	Title   string
	Message string
	Color   Color
	Channel string
}

// Notifier 投递系统通知，权限未授予时可能失败。
type Notifier interface {
	EnsureChannel(ctx context.Context, channel string) error
	Notify(ctx context.Context, req NotificationRequest) error
}

// SpeechConfig 是语音引擎的一次性配置，常量化于分发器。
type SpeechConfig struct {
	Language string
	Rate     float64
	Volume   float64
	Pitch    float64
}

// Speech 播报文本，引擎不可用时可能失败。
type Speech interface {
	Configure(ctx context.Context, cfg SpeechConfig) error
	Speak(ctx context.Context, text string) error
}

// Tone 播放与等级对应的提示音（三个等级三种音）。
// 原型阶段的实现允许是空操作，但调用点必须存在且可独立失败。
type Tone interface {
	Play(ctx context.Context, severity Severity) error
}

// Nop 实现：测试与未接平台的宿主使用。

type NopBanner struct{}

func (NopBanner) Show(context.Context, BannerRequest) error { return nil }

type NopNotifier struct{}

func (NopNotifier) EnsureChannel(context.Context, string) error       { return nil }
func (NopNotifier) Notify(context.Context, NotificationRequest) error { return nil }

type NopSpeech struct{}

func (NopSpeech) Configure(context.Context, SpeechConfig) error { return nil }
func (NopSpeech) Speak(context.Context, string) error           { return nil }

type NopTone struct{}

func (NopTone) Play(context.Context, Severity) error { return nil }

// 日志实现：无头演示里代替真实平台服务，把每次请求打到结构化日志。

// LogBanner 将横幅请求输出为日志。
type LogBanner struct{ Log zerolog.Logger }

func (b LogBanner) Show(_ context.Context, req BannerRequest) error {
	b.Log.Info().
		Str("title", req.Title).
		Str("message", req.Message).
		Dur("duration", req.Duration).
		Msg("banner shown")
	return nil
}

// LogNotifier 将系统通知请求输出为日志。
type LogNotifier struct{ Log zerolog.Logger }

func (n LogNotifier) EnsureChannel(_ context.Context, channel string) error {
	n.Log.Debug().Str("channel", channel).Msg("notification channel ready")
	return nil
}

func (n LogNotifier) Notify(_ context.Context, req NotificationRequest) error {
	n.Log.Info().
		Int("id", req.ID).
		Str("channel", req.Channel).
		Str("title", req.Title).
		Str("message", req.Message).
		Msg("notification delivered")
	return nil
}

// LogSpeech 将语音播报请求输出为日志。
type LogSpeech struct{ Log zerolog.Logger }

func (s LogSpeech) Configure(_ context.Context, cfg SpeechConfig) error {
	s.Log.Debug().
		Str("language", cfg.Language).
		Float64("rate", cfg.Rate).
		Float64("volume", cfg.Volume).
		Float64("pitch", cfg.Pitch).
		Msg("speech engine configured")
	return nil
}

func (s LogSpeech) Speak(_ context.Context, text string) error {
	s.Log.Info().Str("text", text).Msg("speech playback")
	return nil
}

// LogTone 将提示音请求输出为日志。
type LogTone struct{ Log zerolog.Logger }

func (t LogTone) Play(_ context.Context, severity Severity) error {
	t.Log.Info().Str("severity", severity.String()).Msg("tone playback")
	return nil
}
