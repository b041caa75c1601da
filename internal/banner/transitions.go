package banner

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// hideTimerMsg fires a delayed hide scheduled by HideAfter.
type hideTimerMsg struct {
	id       string
	handle   TimerHandle
	animated bool
}

// Show slides the banner in and cancels any scheduled hide.
// It is a no-op when the banner is already showing.
func (b *Banner) Show(animated bool) tea.Cmd {
	if b.closed {
		return nil
	}
	b.timer = 0
	return b.show(animated, kindShow)
}

// ShowAnimated is Show(true).
func (b *Banner) ShowAnimated() tea.Cmd { return b.Show(true) }

// Hide slides the banner out. An animated hide stops the spinner when it
// completes. It is a no-op when the banner is already hidden.
func (b *Banner) Hide(animated bool) tea.Cmd {
	if b.closed {
		return nil
	}
	return b.hide(animated, kindHide)
}

// HideAnimated is Hide(true).
func (b *Banner) HideAnimated() tea.Cmd { return b.Hide(true) }

// HideAfter schedules a hide after delay, replacing any earlier schedule.
// A Show before the delay elapses cancels it.
func (b *Banner) HideAfter(animated bool, delay time.Duration) tea.Cmd {
	if b.closed {
		return nil
	}
	b.lastTimer++
	b.timer = b.lastTimer

	msg := hideTimerMsg{id: b.id, handle: b.timer, animated: animated}
	b.logger.Debug("hide scheduled", "delay", delay, "timer", msg.handle)
	return tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}

// CancelHide drops any scheduled hide without moving the banner.
func (b *Banner) CancelHide() {
	if b.timer != 0 {
		b.logger.Debug("scheduled hide cancelled", "timer", b.timer)
	}
	b.timer = 0
}

// HideScheduled reports whether a delayed hide is pending.
func (b *Banner) HideScheduled() bool { return b.timer != 0 }

// ShowAndDismiss shows the banner animated and hides it again after delay.
func (b *Banner) ShowAndDismiss(delay time.Duration) tea.Cmd {
	show := b.Show(true)
	hide := b.HideAfter(true, delay)
	return tea.Batch(show, hide)
}

// ShowAndDismissAutomatically is ShowAndDismiss with DefaultDismissDelay.
func (b *Banner) ShowAndDismissAutomatically() tea.Cmd {
	return b.ShowAndDismiss(DefaultDismissDelay)
}

// SetText changes the label text. While the banner is visible or animating
// an animated change is queued and applied between a slide out and a slide
// back in; otherwise the text changes at once.
func (b *Banner) SetText(value string, animated bool) tea.Cmd {
	if b.closed {
		return nil
	}
	if animated && (b.IsShowing() || b.IsAnimating()) {
		return b.queue(Change{Text: &value})
	}

	b.applyText(value)
	if b.pending != nil {
		b.pending.Text = nil
		if b.pending.empty() {
			b.pending = nil
		}
	}
	return nil
}

// SetActivity adds or removes the spinner, queued the same way as SetText.
func (b *Banner) SetActivity(value bool, animated bool) tea.Cmd {
	if b.closed {
		return nil
	}
	if animated && (b.IsShowing() || b.IsAnimating()) {
		return b.queue(Change{Activity: &value})
	}

	b.setActivity(value)
	b.Layout()
	if b.pending != nil {
		b.pending.Activity = nil
		if b.pending.empty() {
			b.pending = nil
		}
	}
	if b.IsShowing() {
		return b.startSpinner()
	}
	return nil
}

// Update handles the banner's frame, timer and spinner messages.
func (b *Banner) Update(msg tea.Msg) (*Banner, tea.Cmd) {
	if b.closed {
		return b, nil
	}

	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != b.id {
			return b, nil
		}
		return b, b.step()

	case hideTimerMsg:
		if msg.id != b.id || msg.handle == 0 || msg.handle != b.timer {
			return b, nil
		}
		if b.Phase() == PhaseChangingProperty {
			// The banner comes back once the change lands; try again then.
			return b, tea.Tick(b.duration+frameInterval, func(time.Time) tea.Msg { return msg })
		}
		b.timer = 0
		b.logger.Debug("scheduled hide fired", "timer", msg.handle)
		return b, b.Hide(msg.animated)

	case spinner.TickMsg:
		if b.spinner == nil || msg.ID != b.spinner.ID() || !b.spinning {
			return b, nil
		}
		s, cmd := b.spinner.Update(msg)
		*b.spinner = s
		return b, cmd
	}

	return b, nil
}

func (b *Banner) show(animated bool, kind animKind) tea.Cmd {
	if b.IsShowing() {
		return nil
	}

	b.alpha = 1
	spin := b.startSpinner()
	b.docked = true
	b.center = b.ShowingAnchor()
	b.placeOnGrid()
	b.label.Hidden = false

	if !animated {
		b.snap()
		return spin
	}
	_, cmd := b.animate(kind)
	return tea.Batch(spin, cmd)
}

func (b *Banner) hide(animated bool, kind animKind) tea.Cmd {
	if !b.IsShowing() {
		return nil
	}

	b.docked = false
	b.center = b.HidingAnchor()
	b.alpha = 0
	b.placeOnGrid()
	b.label.Hidden = true

	if !animated {
		b.snap()
		b.stopSpinner()
		// No completion follows an instant hide, so a queued change lands now.
		if b.pending != nil {
			b.applyPending()
		}
		return nil
	}
	_, cmd := b.animate(kind)
	return cmd
}

// queue merges c into the pending change and starts the change cycle unless
// an animation is already running; its completion picks the change up.
func (b *Banner) queue(c Change) tea.Cmd {
	if b.pending == nil {
		b.pending = &Change{}
	}
	b.pending.merge(c)
	if b.IsAnimating() {
		return nil
	}
	return b.hide(true, kindChange)
}

func (b *Banner) applyPending() {
	c := b.pending
	b.pending = nil
	if c.Text != nil {
		b.text = *c.Text
		b.label.Text = *c.Text
	}
	if c.Activity != nil {
		b.setActivity(*c.Activity)
	}
	b.Layout()
	b.logger.Debug("queued change applied", "text", b.text, "activity", b.activity)
}

// complete runs the completion logic of one finished transition.
func (b *Banner) complete(c Completion) tea.Cmd {
	var cmd tea.Cmd

	switch c := c.(type) {
	case ShowCompleted:
		if b.pending != nil && b.IsShowing() && !b.IsAnimating() {
			cmd = b.hide(true, kindChange)
		}
	case HideCompleted:
		switch {
		case !b.IsShowing():
			b.stopSpinner()
			if b.pending != nil {
				b.applyPending()
			}
		case b.pending != nil && !b.IsAnimating():
			// An instant show took over; run the change cycle from here.
			cmd = b.hide(true, kindChange)
		}
	case ChangePropertyCompleted:
		if b.pending != nil {
			b.applyPending()
			if c.Finished {
				// Internal show: a scheduled hide stays armed.
				cmd = b.show(true, kindShow)
			}
		}
	}

	b.logger.Debug("animation completed", "handle", c.Animation(), "completion", c)
	if b.onCompletion != nil {
		b.onCompletion(c)
	}
	return cmd
}

func (b *Banner) applyText(value string) {
	b.text = value
	b.label.Text = value
	b.Layout()
}

// setActivity creates or drops the spinner. It does not start it.
func (b *Banner) setActivity(v bool) {
	b.activity = v
	switch {
	case v && b.spinner == nil:
		s := spinner.New(spinner.WithSpinner(b.spinnerStyle))
		b.spinner = &s
	case !v && b.spinner != nil:
		b.stopSpinner()
		b.spinner = nil
	}
}

func (b *Banner) startSpinner() tea.Cmd {
	if b.spinner == nil || b.spinning {
		return nil
	}
	b.spinning = true
	return b.spinner.Tick
}

func (b *Banner) stopSpinner() {
	b.spinning = false
}

// Spinning reports whether the spinner is animating.
func (b *Banner) Spinning() bool { return b.spinning }
