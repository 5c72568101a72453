// Package content implements HTTP message bodies.
//
// Every [Content] owns its headers. Bodies are produced on demand through
// [Content.ReadAsStream] and can be fully materialized with [ReadAsBytes].
package content
