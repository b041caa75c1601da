// Package theme handles banner palettes for discreet.
// It bundles embedded palettes, loads user palettes from
// ~/.config/discreet/themes/ and blends colours to emulate opacity on terminals
// that have no alpha channel.
package theme
