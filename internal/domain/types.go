package domain

import "encoding/json"

// AccessLevel is the permission level required to act on an
// access-controlled record.
type AccessLevel int

const (
	AccessRead  AccessLevel = 0
	AccessWrite AccessLevel = 1
	AccessAdmin AccessLevel = 2
)

// User identifies an authenticated caller. A nil *User means the
// request is anonymous and may only touch public records.
type User struct {
	ID    string
	Admin bool
}

// JobStatus is the lifecycle status of an asynchronous compute job.
type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusRunning  JobStatus = "running"
	JobStatusSuccess  JobStatus = "success"
	JobStatusError    JobStatus = "error"
	JobStatusCanceled JobStatus = "canceled"
)

// Terminal reports whether the status is a final one.
func (s JobStatus) Terminal() bool {
	return s == JobStatusSuccess || s == JobStatusError || s == JobStatusCanceled
}

// Job metadata values stamped onto every compute submission. The
// reconciler uses them to recognize its own jobs among all job events
// on the bus.
const (
	JobCreator = "histogram"
	JobTask    = "createHistogram"
)

// JobMeta is the submission metadata carried by every job event.
type JobMeta struct {
	Creator          string `json:"creator"`
	Task             string `json:"task"`
	CorrelationToken string `json:"correlationToken"`
}

// JobProgressMessage is attached to a compute job so clients polling
// the job can show completion progress.
type JobProgressMessage struct {
	JobID   string `json:"jobId"`
	UserID  string `json:"userId,omitempty"`
	Total   int    `json:"total"`
	Current int    `json:"current"`
	Message string `json:"message"`
}

// EventType enumerates the lifecycle events the reconciler consumes.
type EventType string

const (
	EventFileUploaded EventType = "file.uploaded"
	EventJobStatus    EventType = "job.status"
	EventItemRemoved  EventType = "item.removed"
	EventFileRemoved  EventType = "file.removed"
)

// FileInfo is the file document embedded in an upload-completion event.
type FileInfo struct {
	ID       string `json:"id"`
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// UploadCompleteEvent is fired when any file finishes uploading into
// the system. Reference is an opaque JSON string supplied by whoever
// initiated the upload; events belonging to other features carry an
// unrelated (or empty) reference.
type UploadCompleteEvent struct {
	File      FileInfo `json:"file"`
	UserID    string   `json:"currentUser"`
	Token     string   `json:"currentToken"`
	Reference string   `json:"reference"`
}

// JobStatusEvent is fired when a job transitions status or is deleted.
type JobStatusEvent struct {
	JobID  string    `json:"jobId"`
	Meta   JobMeta   `json:"meta"`
	Status JobStatus `json:"status"`
	UserID string    `json:"userId"`
	// Deleted is true when the job document was removed rather than
	// updated. A deletion while the job was still pending is treated
	// as a cancellation.
	Deleted bool `json:"deleted"`
}

// EffectiveStatus maps the raw event status to the status the
// reconciler acts on: a job deleted before reaching a terminal state
// counts as canceled.
func (e *JobStatusEvent) EffectiveStatus() JobStatus {
	if e.Deleted && !e.Status.Terminal() {
		return JobStatusCanceled
	}
	return e.Status
}

// ItemRemovedEvent is fired after a container item is deleted.
type ItemRemovedEvent struct {
	ItemID string `json:"itemId"`
}

// FileRemovedEvent is fired after a file is deleted.
type FileRemovedEvent struct {
	FileID string `json:"fileId"`
}

// ReferencePayload is the JSON document embedded in the upload
// reference of histogram output files. It is minted at submission time
// and routed back through the upload pipeline so the reconciler can
// match the uploaded output to its provisional record.
type ReferencePayload struct {
	IsHistogram      bool   `json:"isHistogram"`
	CorrelationToken string `json:"correlationToken,omitempty"`
}

// ParseReference decodes an upload reference string. ok is false when
// the reference is absent, not JSON, or not a JSON object; such
// references belong to other features and are ignored.
func ParseReference(reference string) (ReferencePayload, bool) {
	if reference == "" {
		return ReferencePayload{}, false
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(reference), &raw); err != nil {
		return ReferencePayload{}, false
	}
	var payload ReferencePayload
	if err := json.Unmarshal([]byte(reference), &payload); err != nil {
		return ReferencePayload{}, false
	}
	return payload, true
}
