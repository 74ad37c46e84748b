package consts

// Database tables.
const (
	DBDownloads = "downloads"
)

// Download columns.
const (
	QDLID        = "id"
	QDLRunID     = "run_id"
	QDLEntryID   = "entry_id"
	QDLURL       = "url"
	QDLTitle     = "title"
	QDLKind      = "kind"
	QDLFilePath  = "file_path"
	QDLFileSize  = "file_size"
	QDLStatus    = "status"
	QDLError     = "error_message"
	QDLCreatedAt = "created_at"
)
