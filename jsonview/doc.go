// Package jsonview renders tabular JSON payloads as HTML tables.
//
// A payload holds one unnamed sheet (a row array, or an object with a "data"
// row array) or several named sheets (an object listing ":names", or mapping
// sheet names to row data). Every cell is classified into a Kind by an ordered
// rule list, first match wins:
//
//	date    numbers in the spreadsheet date-serial or epoch-seconds window
//	image   paths whose last segment starts with the media prefix
//	link    site-relative paths
//	list    JSON arrays, or strings encoding one
//	number  JSON numbers and plain decimal strings, echoed as written
//	text    everything else
//
// Cells render as <div class="kind"> inside the table cell. Render writes into
// a caller-owned *html.Node from golang.org/x/net/html; RenderHTML returns
// serialized markup.
package jsonview
