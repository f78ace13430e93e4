// Package listview renders a scrolling window over a list whose rows may
// include non-selectable entries such as section headers. Only the rows in
// the viewport are rendered, and the cursor skips rows the Selectable
// predicate rejects.
package listview
