// Package text builds chat/disconnect-reason text components as NBT
// compounds. Unlike a JSON chat component (what older protocol versions
// and most reference implementations use), the wire format for a
// disconnect reason in this protocol version is a single network-mode
// NBT document whose root compound is itself a text component.
package text

import (
	"fmt"

	"orewire-server/internal/nbt"
)

// Color names one of the standard Minecraft text colors. Anything else
// (hex codes) can be passed directly as a string to WithColor.
type Color string

const (
	ColorBlack       Color = "black"
	ColorDarkBlue    Color = "dark_blue"
	ColorDarkGreen   Color = "dark_green"
	ColorDarkAqua    Color = "dark_aqua"
	ColorDarkRed     Color = "dark_red"
	ColorDarkPurple  Color = "dark_purple"
	ColorGold        Color = "gold"
	ColorGray        Color = "gray"
	ColorDarkGray    Color = "dark_gray"
	ColorBlue        Color = "blue"
	ColorGreen       Color = "green"
	ColorAqua        Color = "aqua"
	ColorRed         Color = "red"
	ColorLightPurple Color = "light_purple"
	ColorYellow      Color = "yellow"
	ColorWhite       Color = "white"
)

// Component is a builder for a single text component node. Extra holds
// child components appended after this node's own text, matching the
// vanilla "extra" array convention for building multi-run messages.
type Component struct {
	text  string
	color Color
	bold  *bool
	extra []Component
}

// New starts a plain-text component with no styling.
func New(text string) Component {
	return Component{text: text}
}

// WithColor returns a copy of c with its color set.
func (c Component) WithColor(color Color) Component {
	c.color = color
	return c
}

// WithBold returns a copy of c with bold explicitly set.
func (c Component) WithBold(bold bool) Component {
	c.bold = &bold
	return c
}

// WithExtra appends child components rendered immediately after c's own
// text, inheriting c's style unless they override it themselves.
func (c Component) WithExtra(children ...Component) Component {
	c.extra = append(append([]Component{}, c.extra...), children...)
	return c
}

// Compound renders c as an NBT Compound suitable for embedding directly
// in a disconnect packet or any other "NBT text component" field.
func (c Component) Compound() nbt.Compound {
	out := nbt.Compound{}.WithEntry("text", nbt.String(c.text))
	if c.color != "" {
		out = out.WithEntry("color", nbt.String(c.color))
	}
	if c.bold != nil {
		v := int8(0)
		if *c.bold {
			v = 1
		}
		out = out.WithEntry("bold", nbt.Byte(v))
	}
	if len(c.extra) > 0 {
		list := make(nbt.List, len(c.extra))
		for i, e := range c.extra {
			list[i] = e.Compound()
		}
		out = out.WithEntry("extra", list)
	}
	return out
}

// EncodeNetwork renders c as the network-mode NBT bytes a disconnect
// packet's reason field expects. A Component's "extra" list is always
// built from other Components (see WithExtra), so it can never mix tag
// types; a failure here means a bug in this package, not malformed input,
// so it panics rather than threading an error through every kick call
// site.
func (c Component) EncodeNetwork() []byte {
	out, err := nbt.EncodeNetwork(c.Compound())
	if err != nil {
		panic(fmt.Sprintf("text: component produced invalid nbt: %v", err))
	}
	return out
}

// Plain is a convenience for the common case of an uncolored kick/error
// message.
func Plain(msg string) []byte {
	return New(msg).EncodeNetwork()
}

// Colored is a convenience for a single-color kick/error message, the
// shape used throughout the reference server's kick call sites (e.g. a
// stale keep-alive response, mismatched protocol version).
func Colored(msg string, color Color) []byte {
	return New(msg).WithColor(color).EncodeNetwork()
}
