package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tonkatsuu/agriconnect-beta/alert"
	"github.com/tonkatsuu/agriconnect-beta/hud"
	"github.com/tonkatsuu/agriconnect-beta/overlay"
	canvasrenderer "github.com/tonkatsuu/agriconnect-beta/render/canvas"
	"github.com/tonkatsuu/agriconnect-beta/scenario"
)

func main() {
	input := flag.String("in", "examples/demo.scene", "场景脚本路径")
	outDir := flag.String("out", "output", "帧快照输出目录")
	debug := flag.String("debug", "", "叠加层几何调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到警报消息的 JSON 数据")
	level := flag.String("log-level", "info", "日志级别 (debug/info/warn/error)")
	flag.Parse()

	logger := newLogger(*level)

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			logger.Fatal().Err(err).Msg("解析 data JSON 失败")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *input, *outDir, *debug, inputData, logger); err != nil {
		logger.Fatal().Err(err).Msg("场景执行失败")
	}
	fmt.Printf("场景已执行完毕，帧输出目录：%s\n", *outDir)
}

// run 串联解析、分发器装配与场景执行。
func run(ctx context.Context, inputPath, outDir, debugPath string, data any, logger zerolog.Logger) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开场景文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	scene, err := scenario.Parse(file)
	if err != nil {
		return fmt.Errorf("解析场景失败: %w", err)
	}

	// 分发器在启动时构造一次并显式注入，不做隐藏的全局单例。
	dispatcher := alert.NewDispatcher(alert.Options{
		Banner:   alert.LogBanner{Log: logger},
		Notifier: alert.LogNotifier{Log: logger},
		Speech:   alert.LogSpeech{Log: logger},
		Tone:     alert.LogTone{Log: logger},
		Log:      &logger,
	})

	surface := hud.NewSurface(hud.Options{
		Renderer: canvasrenderer.NewRenderer(),
		Sink: func(frame *overlay.Frame, _ []byte) {
			logger.Debug().
				Int("primitives", len(frame.Primitives)).
				Float64("spacing_cm", frame.SpacingCm).
				Msg("叠加层已重绘")
		},
		Log: &logger,
	})

	runner, err := scenario.NewRunner(scenario.RunnerOptions{
		Dispatcher: dispatcher,
		Surface:    surface,
		OutDir:     outDir,
		Data:       data,
		Log:        &logger,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := runner.Run(ctx, scene); err != nil {
		return err
	}

	if debugPath != "" {
		frame, _, err := surface.Snapshot()
		if err != nil {
			return fmt.Errorf("生成调试帧失败: %w", err)
		}
		if err := overlay.WriteDebugJSON(frame, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
