package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	_ "github.com/xaionaro-go/audio/pkg/audio/backends/oto"
	_ "github.com/xaionaro-go/audio/pkg/audio/backends/pulseaudio"
	"github.com/xaionaro-go/emotionfusion/pkg/config"
	"github.com/xaionaro-go/emotionfusion/pkg/vad"
	"github.com/xaionaro-go/observability"
)

func syntaxExit(message string) {
	fmt.Fprintf(os.Stderr, "syntax error: %s\n", message)
	pflag.Usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  %[1]s [flags] file <audio-path>
  %[1]s [flags] listen
  %[1]s [flags] fuse <face-label> <face-conf> <voice-label> <voice-conf>
  %[1]s [flags] watch

flags:
`, os.Args[0])
	pflag.PrintDefaults()
}

func main() {
	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level (overrides [log] level)")
	configPath := pflag.String("config", "", "Path to the config file (default ~/.config/voicemood/config.toml)")
	modelPath := pflag.String("model", "", "Path to the voice emotion model (overrides [voice] model_path)")
	duration := pflag.Duration("duration", 0, "Live capture duration (overrides [voice] duration_seconds)")
	sampleRate := pflag.Int("sample-rate", 0, "Live capture sample rate (overrides [voice] sample_rate)")
	silenceThreshold := pflag.Float64("silence-threshold", 0, "Peak amplitude below which a live clip is silence (overrides [voice] silence_threshold)")
	var silenceGate vad.Kind
	pflag.Var(&silenceGate, "silence-gate", "Silence gate: peak or webrtc (overrides [voice] silence_gate)")
	faceReadings := pflag.String("face-readings", "", "File with line-delimited face analyzer readings for 'watch', '-' is stdin (overrides [face] readings_path)")
	netPprofAddr := pflag.String("go-net-pprof-addr", "", "address to listen to for net/pprof requests")
	pflag.Usage = usage
	pflag.Parse()
	if pflag.NArg() < 1 {
		syntaxExit("expected a command")
	}

	cfg, resolvedConfigPath, configExists, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to load the config: %v\n", err)
		os.Exit(1)
	}
	if !pflag.CommandLine.Changed("log-level") {
		loggerLevel, _ = cfg.LogLevel()
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if configExists {
		logger.Debugf(ctx, "loaded the config from '%s'", resolvedConfigPath)
	}

	if *modelPath != "" {
		cfg.Voice.ModelPath = *modelPath
	}
	if *duration > 0 {
		cfg.Voice.DurationSeconds = duration.Seconds()
	}
	if *sampleRate > 0 {
		cfg.Voice.SampleRate = *sampleRate
	}
	if pflag.CommandLine.Changed("silence-threshold") {
		cfg.Voice.SilenceThreshold = *silenceThreshold
	}
	if silenceGate != vad.KindUndefined {
		cfg.Voice.SilenceGate = silenceGate
	}
	if *faceReadings != "" {
		cfg.Face.ReadingsPath = *faceReadings
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal(ctx, err)
	}

	if *netPprofAddr != "" {
		observability.Go(ctx, func() { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancelFn()

	args := pflag.Args()
	switch args[0] {
	case "file":
		if len(args) != 2 {
			syntaxExit("'file' expects exactly one argument (the audio file path)")
		}
		runFile(ctx, cfg, args[1])
	case "listen":
		if len(args) != 1 {
			syntaxExit("'listen' expects no arguments")
		}
		runListen(ctx, cfg)
	case "fuse":
		if len(args) != 5 {
			syntaxExit("'fuse' expects four arguments: <face-label> <face-conf> <voice-label> <voice-conf>")
		}
		if err := runFuse(os.Stdout, args[1:]); err != nil {
			syntaxExit(err.Error())
		}
	case "watch":
		if len(args) != 1 {
			syntaxExit("'watch' expects no arguments")
		}
		runWatch(ctx, cfg)
	default:
		syntaxExit(fmt.Sprintf("unknown command '%s'", args[0]))
	}
}
