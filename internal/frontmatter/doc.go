// Package frontmatter removes and parses the YAML metadata block at the top
// of a skill document.
//
// A block opens with a line containing only "---" as the first non-blank
// line of the document and closes at the next such line. Any later "---"
// line is ordinary markdown (a thematic break) and is left alone. An opener
// without a closer consumes the rest of the document.
package frontmatter
