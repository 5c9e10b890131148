package alert

import (
	"fmt"
	"strings"
)

// Severity 表示警报等级，全序 Low < Medium < High。
type Severity int

const (
	Low Severity = iota
	Medium
	High
)

// Color 采用 0-255 的 RGB 数值（横幅与系统通知的展示色）。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// 等级到展示色与标题的固定全映射。
var (
	severityColors = [...]Color{
		Low:    {R: 67, G: 160, B: 71}, // 绿
		Medium: {R: 251, G: 140, B: 0}, // 橙
		High:   {R: 229, G: 57, B: 53}, // 红
	}
	severityTitles = [...]string{
		Low:    "Low Risk Alert",
		Medium: "Medium Risk Alert",
		High:   "High Risk Alert",
	}
	severityNames = [...]string{
		Low:    "low",
		Medium: "medium",
		High:   "high",
	}
)

func (s Severity) valid() bool { return s >= Low && s <= High }

// String 返回等级的小写名称，未知值返回 "unknown"。
func (s Severity) String() string {
	if !s.valid() {
		return "unknown"
	}
	return severityNames[s]
}

// Title 返回横幅与通知使用的标题。
func (s Severity) Title() string {
	if !s.valid() {
		return severityTitles[Medium]
	}
	return severityTitles[s]
}

// DisplayColor 返回等级对应的展示色。
func (s Severity) DisplayColor() Color {
	if !s.valid() {
		return severityColors[Medium]
	}
	return severityColors[s]
}

// Ordinal 返回等级序号，用作系统通知的 id：同等级的新通知会顶替
// 尚未消失的旧通知（每个等级至多一条待展示）。
func (s Severity) Ordinal() int { return int(s) }

// ParseSeverity 解析 low/medium/high（大小写不敏感）。
func ParseSeverity(v string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	default:
		return Low, fmt.Errorf("未知的警报等级: %q", v)
	}
}

// AudioMode 表示音频提示方式：语音播报或提示音。
type AudioMode int

const (
	AudioSpeech AudioMode = iota
	AudioTone
)

func (m AudioMode) String() string {
	if m == AudioTone {
		return "tone"
	}
	return "speech"
}

// ParseAudioMode 解析 speech/tone（大小写不敏感）。
func ParseAudioMode(v string) (AudioMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "speech":
		return AudioSpeech, nil
	case "tone":
		return AudioTone, nil
	default:
		return AudioSpeech, fmt.Errorf("未知的音频模式: %q", v)
	}
}
