package banner

// Edge is the host edge a banner docks to.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
)

// String returns the string representation of Edge.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// ParseEdge converts "top" or "bottom" to an Edge.
func ParseEdge(s string) (Edge, bool) {
	switch s {
	case "top", "":
		return EdgeTop, true
	case "bottom":
		return EdgeBottom, true
	default:
		return EdgeTop, false
	}
}

// Phase describes where a banner is in its show/hide cycle.
type Phase int

const (
	// PhaseHidden means the banner rests off the host.
	PhaseHidden Phase = iota
	// PhaseShowing means the banner is animating in.
	PhaseShowing
	// PhaseVisible means the banner rests at its showing position.
	PhaseVisible
	// PhaseHiding means the banner is animating out.
	PhaseHiding
	// PhaseChangingProperty means the banner is animating out to apply a queued change.
	PhaseChangingProperty
)

// String returns the string representation of Phase.
func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseShowing:
		return "showing"
	case PhaseVisible:
		return "visible"
	case PhaseHiding:
		return "hiding"
	case PhaseChangingProperty:
		return "changing"
	default:
		return "unknown"
	}
}

// Change holds property updates queued while the banner animates.
// A nil field means that property is not queued.
type Change struct {
	Text     *string
	Activity *bool
}

// merge overwrites the fields set in o.
func (c *Change) merge(o Change) {
	if o.Text != nil {
		t := *o.Text
		c.Text = &t
	}
	if o.Activity != nil {
		a := *o.Activity
		c.Activity = &a
	}
}

// empty reports whether no field is queued.
func (c Change) empty() bool {
	return c.Text == nil && c.Activity == nil
}
