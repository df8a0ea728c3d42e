package constants

// BackendStatus is the readiness state of the optional model backend.
type BackendStatus string

// Stable values (reported verbatim over the status API).
const (
	BackendUnavailable  BackendStatus = "UNAVAILABLE"  // no backend configured, or load failed
	BackendDownloading  BackendStatus = "DOWNLOADING"  // load in progress
	BackendDownloadable BackendStatus = "DOWNLOADABLE" // configured but load not started
	BackendAvailable    BackendStatus = "AVAILABLE"    // ready for inference
)

// JobStatus is the canonical status for queued batch analyses.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued  JobStatus = "QUEUED"  // waiting for a worker
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusDone    JobStatus = "DONE"    // analysis stored
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure
)
