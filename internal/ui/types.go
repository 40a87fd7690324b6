package ui

// Progress creates progress indicators.
type Progress interface {
	// Start creates a determinate progress bar with the given total.
	Start(title string, total int) ProgressBar
}

// ProgressBar reports advancement of a fixed-size task.
type ProgressBar interface {
	Increment(n int)
	SetTitle(title string)
	// Done completes the bar. Calling it more than once is safe.
	Done()
}
