package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration.
	FieldFormat = "format"
	FieldJobs   = "jobs"
	FieldTabs   = "tabs"

	// Per-document statistics.
	FieldNodes     = "nodes"
	FieldBytes     = "bytes"
	FieldDuration  = "duration"
	FieldUnchanged = "unchanged"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesFailed     = "files_failed"
	FieldFilesWritten    = "files_written"

	// Version.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
