// Package report provides deck rendering and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown with a region pie chart
//
// Every writer renders the same sections: the snapshot header with the
// region breakdown, the priority activation matrix (top opportunities) and
// the lead intelligence deck (every lead that survived the filters).
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
