// Package mood keeps the latest estimate of every modality together with
// the fused emotion derived from them.
package mood

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/emotionfusion/pkg/emotion"
	"github.com/xaionaro-go/emotionfusion/pkg/fusion"
	"github.com/xaionaro-go/xsync"
)

// State is a snapshot of the Board. Version grows by one on every update,
// so a subscriber may drop snapshots older than one it already handled.
type State struct {
	Version uint64
	Face    emotion.ModalityResult
	Voice   emotion.ModalityResult
	Final   fusion.Result
}

func (s State) String() string {
	return fmt.Sprintf("#%d face:%q(%.2f) voice:%q(%.2f) final:%s",
		s.Version, s.Face.Label, s.Face.Confidence, s.Voice.Label, s.Voice.Confidence, s.Final.Emotion)
}

// Board holds only the latest result per modality; there is no history.
type Board struct {
	locker   xsync.Mutex
	state    State
	onChange func(context.Context, State)
}

// NewBoard returns a Board that displays neutral until the first update.
// onChange (may be nil) is called after every update, outside of the lock.
func NewBoard(onChange func(context.Context, State)) *Board {
	return &Board{
		state: State{
			Final: fusion.FuseResults(emotion.ModalityResult{}, emotion.ModalityResult{}),
		},
		onChange: onChange,
	}
}

func (b *Board) SetFace(ctx context.Context, r emotion.ModalityResult) State {
	return b.update(ctx, emotion.ModalityFace, r)
}

func (b *Board) SetVoice(ctx context.Context, r emotion.ModalityResult) State {
	return b.update(ctx, emotion.ModalityVoice, r)
}

func (b *Board) Current(ctx context.Context) State {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &b.locker, func() State {
		return b.state
	})
}

func (b *Board) update(
	ctx context.Context,
	modality emotion.Modality,
	r emotion.ModalityResult,
) State {
	logger.Tracef(ctx, "update(ctx, %s, %q, %.3f)", modality, r.Label, r.Confidence)
	s := xsync.DoR1(xsync.WithNoLogging(ctx, true), &b.locker, func() State {
		switch modality {
		case emotion.ModalityFace:
			b.state.Face = r
		case emotion.ModalityVoice:
			b.state.Voice = r
		}
		b.state.Version++
		b.state.Final = fusion.FuseResults(b.state.Face, b.state.Voice)
		return b.state
	})
	logger.Debugf(ctx, "mood: %s", s)
	if b.onChange != nil {
		b.onChange(ctx, s)
	}
	return s
}
