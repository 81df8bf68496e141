// Package flow arranges a sequence of rectangular items into wrapped lines.
//
// Items are packed along a primary axis (the "length", width when the
// orientation is horizontal) until they no longer fit, then wrapped onto a
// new line. Lines stack along the secondary axis (the "thickness"). Leftover
// space is distributed in two independent directions: across the stack of
// lines by the container gravity, and inside each line by item weights.
//
// # Pipeline
//
// A layout pass runs four stages over a freshly allocated working set:
//
//  1. [Pack] groups items into [Line] records.
//  2. [Position] stacks the lines and lays items out start-to-end.
//  3. [Resolve] picks the final container extent per axis from a [SizeMode].
//  4. [Distribute] applies gravity and weighted stretch.
//
// [Layout] runs all four stages and returns a [Result] holding the absolute
// rectangle of every item. [Run] additionally drives the host collaborators:
// it asks a [Measurer] for natural sizes before the pass and hands every
// final rectangle to a [Placer] afterwards.
//
// # Example
//
//	props := flow.DefaultProperties()
//	props.MaxWidth, props.WidthMode = 120, flow.Exact
//	items := flow.Measure(params, measurer)
//	res := flow.Layout(items, props)
//	for _, it := range res.Items {
//	    fmt.Println(it.Bounds)
//	}
//
// The engine keeps no state between passes and never mutates its inputs, so
// concurrent passes over the same items are safe.
package flow
