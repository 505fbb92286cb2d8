package rewrite

// DefaultPattern captures script, style and image paths up to the closing quote.
const DefaultPattern = `(\/?(?:css|js|images)\/[^"']+)`

// Options controls how files are rewritten
type Options struct {
	// DryRun computes results without writing files.
	DryRun bool
	// Workers is the number of files processed concurrently. Values below 1
	// mean one file at a time.
	Workers int
	// Encoding is the charset of the input files (default utf-8).
	Encoding string
	// AllowEmptyPaths makes an empty file list a no-op instead of ErrNoFiles.
	AllowEmptyPaths bool
	// OnStart is called with the number of files before any is processed.
	OnStart func(total int)
	// OnFile is called once per processed file. Calls are serialized.
	OnFile func(Result)
}

// Result describes the outcome for one file
type Result struct {
	File            string
	HasChanged      bool
	NumMatches      int
	NumReplacements int
	// Unmapped holds the normalized keys that had no manifest entry, once per
	// occurrence.
	Unmapped []string
}

// ChangedFiles returns the files whose contents changed
func ChangedFiles(results []Result) []string {
	var files []string
	for _, r := range results {
		if r.HasChanged {
			files = append(files, r.File)
		}
	}
	return files
}
