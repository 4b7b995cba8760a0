// Package rain implements the glyph-rain background: evenly spaced columns of
// characters falling down a drawing surface, each followed by a fading streak.
//
// Glyphs are harvested from a seed text that the host may replace at any time;
// the renderer reads the latest value at the start of every frame. Columns are
// rebuilt whenever the viewport is resized and otherwise live for as long as the
// renderer is mounted, recycling above the top edge after falling off the bottom.
//
// The renderer is single-threaded. Every Host callback (frames and resizes) must
// be delivered on the same goroutine.
package rain
