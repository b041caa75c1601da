package banner

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

// FPS is the frame rate of the slide animation.
const FPS = 60

const frameInterval = time.Second / FPS

// AnimationHandle identifies one animated transition.
type AnimationHandle uint64

// TimerHandle identifies one scheduled delayed hide.
type TimerHandle uint64

type animKind int

const (
	kindShow animKind = iota
	kindHide
	kindChange
)

func (k animKind) String() string {
	switch k {
	case kindShow:
		return "show"
	case kindHide:
		return "hide"
	case kindChange:
		return "changeProperty"
	default:
		return "unknown"
	}
}

// Completion is delivered once for every animated transition, in start order.
// It is one of ShowCompleted, HideCompleted or ChangePropertyCompleted.
type Completion interface {
	Animation() AnimationHandle
	completion()
}

// ShowCompleted reports the end of a slide in.
type ShowCompleted struct {
	Handle AnimationHandle
	// Finished is false when a later transition took over before this one
	// settled.
	Finished bool
}

// HideCompleted reports the end of a slide out.
type HideCompleted struct {
	Handle   AnimationHandle
	Finished bool
}

// ChangePropertyCompleted reports the end of the slide out that precedes a
// queued property change.
type ChangePropertyCompleted struct {
	Handle   AnimationHandle
	Finished bool
}

func (c ShowCompleted) Animation() AnimationHandle           { return c.Handle }
func (c HideCompleted) Animation() AnimationHandle           { return c.Handle }
func (c ChangePropertyCompleted) Animation() AnimationHandle { return c.Handle }

func (ShowCompleted) completion()           {}
func (HideCompleted) completion()           {}
func (ChangePropertyCompleted) completion() {}

type inflight struct {
	handle     AnimationHandle
	kind       animKind
	superseded bool
}

func (a inflight) completion() Completion {
	switch a.kind {
	case kindShow:
		return ShowCompleted{Handle: a.handle, Finished: !a.superseded}
	case kindHide:
		return HideCompleted{Handle: a.handle, Finished: !a.superseded}
	default:
		return ChangePropertyCompleted{Handle: a.handle, Finished: !a.superseded}
	}
}

// frameMsg advances the slide animation of one banner.
type frameMsg struct {
	id string
}

// motion is the presentation layer: where the banner is drawn while the model
// anchor and opacity have already jumped to their targets.
type motion struct {
	spring harmonica.Spring

	shownY, velY         float64
	shownAlpha, velAlpha float64

	frames     int // frames left before snapping to the target
	fullFrames int
	ticking    bool

	inflight []inflight
	lastAnim AnimationHandle
}

func (m *motion) init(d time.Duration) {
	m.fullFrames = max(1, int(math.Round(float64(d)/float64(frameInterval))))
	// A critically damped spring covers most of the distance in d; the
	// remainder is snapped on the last frame.
	freq := 6.0
	if d > 0 {
		freq = 6.0 / d.Seconds()
	}
	m.spring = harmonica.NewSpring(harmonica.FPS(FPS), freq, 1.0)
}

// animate records a new in-flight transition and makes sure the frame loop runs.
func (b *Banner) animate(kind animKind) (AnimationHandle, tea.Cmd) {
	b.lastAnim++
	h := b.lastAnim
	for i := range b.inflight {
		b.inflight[i].superseded = true
	}
	b.inflight = append(b.inflight, inflight{handle: h, kind: kind})
	b.frames = b.fullFrames

	b.logger.Debug("animation started", "kind", kind, "handle", h, "in_flight", len(b.inflight))

	if b.ticking {
		return h, nil
	}
	b.ticking = true
	return h, b.frameTick()
}

// snap moves the presentation straight to the model. In-flight transitions
// settle on the next frame.
func (b *Banner) snap() {
	b.snapPresentation()
	if b.ticking {
		b.frames = 0
		for i := range b.inflight {
			b.inflight[i].superseded = true
		}
	}
}

func (b *Banner) snapPresentation() {
	b.shownY, b.velY = b.center.Y, 0
	b.shownAlpha, b.velAlpha = b.alpha, 0
}

func (b *Banner) frameTick() tea.Cmd {
	id := b.id
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

// step advances the presentation one frame and settles the in-flight
// transitions once the motion is done.
func (b *Banner) step() tea.Cmd {
	if !b.ticking {
		return nil
	}

	b.frames--
	if b.frames <= 0 {
		b.snapPresentation()
		return b.settle()
	}

	b.shownY, b.velY = b.spring.Update(b.shownY, b.velY, b.center.Y)
	b.shownAlpha, b.velAlpha = b.spring.Update(b.shownAlpha, b.velAlpha, b.alpha)
	b.shownAlpha = clamp01(b.shownAlpha)
	return b.frameTick()
}

// settle completes every transition started before this point, in start
// order, exactly once. Transitions started by completion handlers belong to
// the next batch.
func (b *Banner) settle() tea.Cmd {
	b.ticking = false
	batch := b.inflight
	b.inflight = nil

	cmds := make([]tea.Cmd, 0, len(batch))
	for _, a := range batch {
		if b.closed {
			break
		}
		cmds = append(cmds, b.complete(a.completion()))
	}
	return tea.Batch(cmds...)
}

// Presented returns the rectangle the banner is drawn at this frame.
func (b *Banner) Presented() Rect {
	return rectAround(Point{X: b.center.X, Y: b.shownY}, b.size())
}

// PresentedAlpha returns the opacity the banner is drawn with this frame.
func (b *Banner) PresentedAlpha() float64 { return b.shownAlpha }

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
