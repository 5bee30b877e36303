// Package pipeline executes the lint workflow for a language team as a
// sequence of steps.
//
// A lint run moves through multiple stages: fetching the team page, filtering
// the PO file list to the requested packages, downloading the files, and
// running the external checker. Each stage is implemented as a Step that
// receives the accumulating LintRun and records its results there.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running runs
// 4. --download-only falls out naturally as a shorter pipeline
//
// The pipeline supports both single-language runs and batch processing of
// several languages with concurrency control using errgroup.
package pipeline
