// Package layout evaluates a rendered document the way a browser's layout
// engine does for a given output medium.
//
// The document carries one stylesheet for both media. Layout parses it,
// keeps the rules whose media query matches the requested RenderMode,
// cascades them over the DOM and produces the VisualTree that medium would
// display: boxes whose computed display is none are dropped with their
// subtree, PRINT resolves the @page sheet and applies the device's
// ink-saving default to every box that does not force exact colors.
//
// Only the subset of CSS the summary stylesheet relies on is modelled:
// type, class and id selectors, compound and descendant selectors, media
// types with width features, @page size and margin. Rules using other
// selector syntax are skipped.
package layout
