package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// DescRewriting is the progress bar description used while rewriting files
const DescRewriting = "Rewriting"

// NewProgressBarTo creates a consistently styled progress bar writing to w.
//
// Parameters:
//   - total: Total number of items.
//   - description: Text description to show before the progress bar (e.g., DescRewriting).
//
// Example:
//
//	bar := utils.NewProgressBarTo(os.Stderr, len(files), utils.DescRewriting)
//	defer bar.Finish()
//
//	for _, file := range files {
//	    // Rewrite file
//	    bar.Add(1)
//	}
func NewProgressBarTo(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
	)
}
