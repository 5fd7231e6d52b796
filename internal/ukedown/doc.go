// Package ukedown renders ukedown songsheet markup to HTML.
//
// Ukedown is Markdown plus an inline chord syntax: a bracketed chord name such as
// [Am] or [G7 320001] is emitted as a chord span
//
//	<span class="chord">Am</span>
//
// so downstream consumers can locate chords in the rendered document. Rendering is
// delegated to goldmark; the chord syntax and the newline-to-<br> behaviour are
// exposed as named extensions ("udn" and "nl2br") alongside the usual goldmark ones.
package ukedown
