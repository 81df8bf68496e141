package scene

import (
	"strings"

	"github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/flow"
)

// ParseOrientation parses "horizontal" (or "row") and "vertical" (or
// "column"). The empty string means horizontal.
func ParseOrientation(s string) (flow.Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "row":
		return flow.Horizontal, nil
	case "vertical", "column":
		return flow.Vertical, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidOrientation, "unknown orientation %q", s)
	}
}

// ParseSizeMode parses "exact", "at_most" or "unspecified". The empty
// string yields AtMost when a positive bound is given and Unspecified
// otherwise.
func ParseSizeMode(s string, bound int) (flow.SizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		if bound > 0 {
			return flow.AtMost, nil
		}
		return flow.Unspecified, nil
	case "unspecified", "wrap_content":
		return flow.Unspecified, nil
	case "exact", "exactly", "match_parent":
		return flow.Exact, nil
	case "at_most", "at-most", "atmost":
		return flow.AtMost, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidSizeMode, "unknown size mode %q", s)
	}
}

type gravityToken struct {
	h, v  flow.Align
	broad bool
}

var gravityTokens = map[string]gravityToken{
	"left":              {h: flow.AlignStart},
	"start":             {h: flow.AlignStart},
	"right":             {h: flow.AlignEnd},
	"end":               {h: flow.AlignEnd},
	"center_horizontal": {h: flow.AlignCenter},
	"fill_horizontal":   {h: flow.AlignFill},
	"top":               {v: flow.AlignStart},
	"bottom":            {v: flow.AlignEnd},
	"center_vertical":   {v: flow.AlignCenter},
	"fill_vertical":     {v: flow.AlignFill},
	"center":            {h: flow.AlignCenter, v: flow.AlignCenter, broad: true},
	"fill":              {h: flow.AlignFill, v: flow.AlignFill, broad: true},
}

// ParseGravity parses a "|"-separated list of gravity tokens such as
// "center_vertical|right". The broad tokens "center" and "fill" set both
// axes but give way to a per-axis token, so "center|top" centers
// horizontally and aligns to the top. Two per-axis tokens that disagree on
// the same axis are an error. The empty string is the zero Gravity.
func ParseGravity(s string) (flow.Gravity, error) {
	var g, broad flow.Gravity
	for _, raw := range strings.Split(s, "|") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		tok, ok := gravityTokens[name]
		if !ok {
			return flow.Gravity{}, errors.New(errors.ErrCodeInvalidGravity, "unknown gravity %q", name)
		}
		if tok.broad {
			broad = flow.Gravity{Horizontal: tok.h, Vertical: tok.v}
			continue
		}
		if err := setAlign(&g.Horizontal, tok.h, s); err != nil {
			return flow.Gravity{}, err
		}
		if err := setAlign(&g.Vertical, tok.v, s); err != nil {
			return flow.Gravity{}, err
		}
	}
	if g.Horizontal == flow.AlignUnset {
		g.Horizontal = broad.Horizontal
	}
	if g.Vertical == flow.AlignUnset {
		g.Vertical = broad.Vertical
	}
	return g, nil
}

func setAlign(dst *flow.Align, a flow.Align, src string) error {
	if a == flow.AlignUnset {
		return nil
	}
	if *dst != flow.AlignUnset && *dst != a {
		return errors.New(errors.ErrCodeInvalidGravity, "conflicting gravity %q", src)
	}
	*dst = a
	return nil
}

var (
	horizontalNames = map[flow.Align]string{
		flow.AlignStart:  "left",
		flow.AlignCenter: "center_horizontal",
		flow.AlignEnd:    "right",
		flow.AlignFill:   "fill_horizontal",
	}
	verticalNames = map[flow.Align]string{
		flow.AlignStart:  "top",
		flow.AlignCenter: "center_vertical",
		flow.AlignEnd:    "bottom",
		flow.AlignFill:   "fill_vertical",
	}
)

// FormatGravity renders g in the syntax accepted by ParseGravity.
func FormatGravity(g flow.Gravity) string {
	if g.Horizontal == g.Vertical {
		switch g.Horizontal {
		case flow.AlignCenter:
			return "center"
		case flow.AlignFill:
			return "fill"
		}
	}
	var parts []string
	if name, ok := horizontalNames[g.Horizontal]; ok {
		parts = append(parts, name)
	}
	if name, ok := verticalNames[g.Vertical]; ok {
		parts = append(parts, name)
	}
	return strings.Join(parts, "|")
}

// Edges resolves the spacing to concrete per-side values.
func (s Spacing) Edges() flow.Edges {
	side := func(p *int) int {
		if p != nil {
			return *p
		}
		return s.All
	}
	return flow.Edges{
		Top:    side(s.Top),
		Right:  side(s.Right),
		Bottom: side(s.Bottom),
		Left:   side(s.Left),
	}
}
