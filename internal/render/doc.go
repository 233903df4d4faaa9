// Package render turns a fetched document's markdown into the HTML fragment
// embedded in the compiled artifact.
//
// Rendering is a fixed, ordered pipeline per document:
//
//  1. list indentation normalization (2-space nesting -> 4-space nesting)
//  2. mermaid fence extraction (bodies replaced by placeholder tokens)
//  3. markdown -> HTML conversion (goldmark, heading-ID state reset per document)
//  4. mermaid fence restoration (placeholders -> diagram containers)
//  5. mention resolution against the compilation's anchor map
//
// The order is load-bearing: the converter must never see mermaid bodies, and
// mentions only exist as raw HTML anchors after conversion. The pipeline never
// returns an error; anomalies degrade to visible fallback fragments.
package render
