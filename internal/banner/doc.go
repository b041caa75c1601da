// Package banner implements a discreet notification banner for bubbletea
// programs: a short text with an optional activity spinner that slides in
// from the top or bottom edge of a host area and slides out again.
//
// Geometry is kept in logical units and mapped onto terminal cells of
// CellWidth by CellHeight units. Transitions update the model anchor and
// opacity at once; the drawn position follows on a spring-driven frame loop
// and each animated transition reports exactly one Completion, in start
// order.
//
// Property changes made while the banner is visible are queued and applied
// between a slide out and a slide back in, so several changes arriving during
// one cycle land together.
package banner
