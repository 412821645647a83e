// Package markup parses inline color tags of the form [RRGGBB].
//
// A tag switches the color of all following characters until the next tag.
// Tags are removed from the text, and the colors are reported as an ordered
// list of half-open rune ranges over the remaining plain text:
//
//	plain, segs := markup.Parse("[FF0000]Hi[00FF00]!")
//	// plain == "Hi!"
//	// segs  == [{White 0 0} {#FFFF0000 0 2} {#FF00FF00 2 3}]
//
// Anything that only looks like a tag (wrong length, non-hex digits, a
// missing closing bracket) is kept as ordinary text.
package markup
