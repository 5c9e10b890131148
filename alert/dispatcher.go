package alert

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// 分发器：一次 Dispatch 按固定顺序向横幅、系统通知、音频三个独立的
// 协作方各发出一条请求。任一请求失败都被就地捕获并记入 Outcome，
// 不会阻断其余请求；整体结果始终是"已完成"。

// ErrEmptyMessage 表示消息去除空白后为空，分发在触达任何协作方之前
// 即告失败（无部分副作用）。
var ErrEmptyMessage = errors.New("警报消息不能为空")

// 通知渠道与语音引擎的固定常量。
const (
	ChannelName    = "crop_alerts"
	BannerDuration = 5 * time.Second
)

var defaultSpeechConfig = SpeechConfig{
	Language: "en-US",
	Rate:     0.5,
	Volume:   1.0,
	Pitch:    1.0,
}

// Request 描述一次用户触发的警报，构造后仅用于单次分发，不持久化。
type Request struct {
	Severity  Severity
	Message   string
	AudioMode AudioMode
}

// Outcome 记录一次分发中三条子请求各自的结果。
// 调用方若需要完整的成败细节，应逐项检查，而不是看单一聚合值。
type Outcome struct {
	ID            string // 日志关联用的分发标识
	Banner        error
	Notification  error
	Audio         error
	AudioFellBack bool // 语音失败后是否已退回提示音
}

// Failed 返回非空的子请求错误集合。
func (o *Outcome) Failed() []error {
	var errs []error
	for _, err := range []error{o.Banner, o.Notification, o.Audio} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Dispatcher 串联三个协作方。显式注入，应用启动时构造一次并传递引用，
// 不做隐藏的全局单例。
type Dispatcher struct {
	banner   Banner
	notifier Notifier
	speech   Speech
	tone     Tone
	log      zerolog.Logger

	setupOnce sync.Once
}

// Options 配置分发器的协作方与日志；留空的协作方以 Nop 实现兜底。
type Options struct {
	Banner   Banner
	Notifier Notifier
	Speech   Speech
	Tone     Tone
	Log      *zerolog.Logger
}

// NewDispatcher 构造分发器。
func NewDispatcher(opts Options) *Dispatcher {
	d := &Dispatcher{
		banner:   opts.Banner,
		notifier: opts.Notifier,
		speech:   opts.Speech,
		tone:     opts.Tone,
		log:      zerolog.Nop(),
	}
	if d.banner == nil {
		d.banner = NopBanner{}
	}
	if d.notifier == nil {
		d.notifier = NopNotifier{}
	}
	if d.speech == nil {
		d.speech = NopSpeech{}
	}
	if d.tone == nil {
		d.tone = NopTone{}
	}
	if opts.Log != nil {
		d.log = *opts.Log
	}
	return d
}

// Dispatch 执行一次警报分发。
// 返回错误仅在入参非法（空消息）时出现；协作方失败不构成返回错误，
// 只体现在 Outcome 里。并发调用允许，不做合并或排队。
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Outcome, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("分发被拒绝: %w", ErrEmptyMessage)
	}

	// 首次分发前做一次幂等初始化；失败只降级，不阻断分发。
	d.setupOnce.Do(func() { d.setup(ctx) })

	out := &Outcome{ID: uuid.NewString()}
	log := d.log.With().
		Str("dispatch_id", out.ID).
		Str("severity", req.Severity.String()).
		Logger()

	title := req.Severity.Title()
	color := req.Severity.DisplayColor()

	// 请求顺序固定：横幅、系统通知、音频。完成顺序不做保证。
	out.Banner = d.banner.Show(ctx, BannerRequest{
		Title:    title,
		Message:  message,
		Color:    color,
		Duration: BannerDuration,
	})
	if out.Banner != nil {
		log.Warn().Err(out.Banner).Msg("横幅请求失败")
	}

	out.Notification = d.notifier.Notify(ctx, NotificationRequest{
		ID:      req.Severity.Ordinal(),
		Title:   title,
		Message: message,
		Color:   color,
		Channel: ChannelName,
	})
	if out.Notification != nil {
		log.Warn().Err(out.Notification).Msg("系统通知请求失败")
	}

	out.Audio, out.AudioFellBack = d.playAudio(ctx, req.Severity, req.AudioMode, message)
	if out.Audio != nil {
		log.Warn().Err(out.Audio).Bool("fallback", out.AudioFellBack).Msg("音频请求失败")
	}

	log.Info().Int("failed", len(out.Failed())).Msg("警报分发完成")
	return out, nil
}

// playAudio 发出音频请求。语音失败时一次性退回中等等级提示音
// （固定策略，不可配置）；提示音模式直接按等级播放。
func (d *Dispatcher) playAudio(ctx context.Context, severity Severity, mode AudioMode, message string) (err error, fellBack bool) {
	if mode == AudioTone {
		return d.tone.Play(ctx, severity), false
	}
	if err := d.speech.Speak(ctx, message); err != nil {
		if toneErr := d.tone.Play(ctx, Medium); toneErr != nil {
			return fmt.Errorf("语音播报失败(%v)，提示音退路也失败: %w", err, toneErr), true
		}
		return err, true
	}
	return nil, false
}

// setup 配置通知渠道与语音引擎，失败只记录日志。
func (d *Dispatcher) setup(ctx context.Context) {
	if err := d.notifier.EnsureChannel(ctx, ChannelName); err != nil {
		d.log.Warn().Err(err).Str("channel", ChannelName).Msg("通知渠道初始化失败，通知将降级")
	}
	if err := d.speech.Configure(ctx, defaultSpeechConfig); err != nil {
		d.log.Warn().Err(err).Msg("语音引擎初始化失败，播报将降级")
	}
}
