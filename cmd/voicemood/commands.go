package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/emotionfusion/pkg/classifier/implementations/randomforest"
	"github.com/xaionaro-go/emotionfusion/pkg/config"
	"github.com/xaionaro-go/emotionfusion/pkg/dsp/mfcc"
	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
	"github.com/xaionaro-go/emotionfusion/pkg/face"
	"github.com/xaionaro-go/emotionfusion/pkg/fusion"
	"github.com/xaionaro-go/emotionfusion/pkg/mood"
	"github.com/xaionaro-go/emotionfusion/pkg/voiceemotion"
	"github.com/xaionaro-go/observability"
)

// newPipeline fails fatally: without a usable model there is no voice
// analysis at all.
func newPipeline(ctx context.Context, cfg config.Config) *voiceemotion.Pipeline {
	forest, err := randomforest.Load(ctx, cfg.Voice.ModelPath)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	extractor, err := mfcc.New(cfg.MFCC())
	if err != nil {
		logger.Fatal(ctx, err)
	}

	opts := append(cfg.VoiceOptions(), voiceemotion.OptionFeatureExtractor{FeatureExtractor: extractor})
	p, err := voiceemotion.New(ctx, forest, opts...)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	logger.Infof(ctx, "initialized the voice emotion pipeline (model %s, %d trees)", forest.ModelHash(), forest.NumTrees())
	return p
}

func modalityLine(modality emotion.Modality, r emotion.ModalityResult) string {
	if !r.IsPresent() {
		return fmt.Sprintf("%s: -", modality)
	}
	_, style := emotion.StyleOf(r.Label)
	return fmt.Sprintf("%s: %s", modality, style.Describe(r.Confidence))
}

func finalLine(r fusion.Result) string {
	return "final: " + r.Style.Banner()
}

func printVoiceOnly(w io.Writer, voice emotion.ModalityResult) {
	fmt.Fprintln(w, modalityLine(emotion.ModalityVoice, voice))
	if len(voice.Distribution) > 0 {
		fmt.Fprintf(w, "distribution: %s\n", voice.Distribution)
	}
	fmt.Fprintln(w, finalLine(fusion.FuseResults(emotion.ModalityResult{}, voice)))
}

func runFile(ctx context.Context, cfg config.Config, path string) {
	p := newPipeline(ctx, cfg)
	defer p.Close()
	printVoiceOnly(os.Stdout, p.AnalyzeFile(ctx, path))
}

func runListen(ctx context.Context, cfg config.Config) {
	p := newPipeline(ctx, cfg)
	defer p.Close()
	printVoiceOnly(os.Stdout, p.AnalyzeRealtime(ctx, 0, 0))
}

func runFuse(w io.Writer, args []string) error {
	faceConf, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("unable to parse the face confidence '%s': %w", args[1], err)
	}
	voiceConf, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("unable to parse the voice confidence '%s': %w", args[3], err)
	}
	e := fusion.Fuse(args[0], faceConf, args[2], voiceConf)
	fmt.Fprintln(w, finalLine(fusion.Result{Emotion: e, Style: e.Style()}))
	return nil
}

func openFaceReadings(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the face readings '%s': %w", path, err)
	}
	return f, nil
}

func runWatch(ctx context.Context, cfg config.Config) {
	p := newPipeline(ctx, cfg)
	defer p.Close()

	readings, err := openFaceReadings(cfg.Face.ReadingsPath)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer readings.Close()

	board := mood.NewBoard(func(ctx context.Context, s mood.State) {
		fmt.Printf("%s | %s | %s\n",
			modalityLine(emotion.ModalityFace, s.Face),
			modalityLine(emotion.ModalityVoice, s.Voice),
			finalLine(s.Final),
		)
	})
	fmt.Println(finalLine(board.Current(ctx).Final))

	observability.Go(ctx, func() {
		defer logger.Infof(ctx, "stopped the face reader")
		logger.Infof(ctx, "started the face reader")
		watchFace(ctx, face.NewDecoder(readings), board)
	})

	defer logger.Infof(ctx, "stopped listening")
	logger.Infof(ctx, "started listening")
	for ctx.Err() == nil {
		board.SetVoice(ctx, p.AnalyzeRealtime(ctx, 0, 0))
	}
}

func watchFace(ctx context.Context, analyzer face.Analyzer, board *mood.Board) {
	for {
		r, err := analyzer.Next(ctx)
		switch {
		case err == nil:
			board.SetFace(ctx, r)
		case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
			return
		default:
			logger.Errorf(ctx, "%v", err)
			return
		}
	}
}
