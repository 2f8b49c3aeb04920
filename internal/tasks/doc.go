// Package tasks runs catalog work off the UI loop with non-blocking progress reporting.
//
// # Core Operations
//
// The [Engine] interface defines the operations the TUI and CLI share:
//
//  1. [Engine.Search] : artist search by name
//
//  2. [Engine.FetchDetail] : top tracks and albums for one artist
//     - Both sections are fetched concurrently with errgroup
//     - Each section keeps its own error so a failed fetch never hides the sibling section
//     - Top tracks are truncated to the configured row count
//
//  3. [ArtistEngine.BulkExport] : resolve several artists by name and write their
//     detail to disk in one of the [formatter] formats, with a manifest summarizing the run
//
// # Progress Reporting
//
// All operations accept an optional channel of [ProgressUpdate]. Updates use select with
// default so a slow or absent reader never blocks the work.
//
// # Stale Results
//
// [Tracker] hands out a [Ticket] per screen. Beginning a new ticket cancels the context
// of the previous one, and [Tracker.Current] lets the UI drop messages that arrive late.
package tasks
