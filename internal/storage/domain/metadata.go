package domain

// Status is the lifecycle state shared by files and their parts.
type Status string

const (
	// StatusProcessing holds from creation until every chunk is stored.
	StatusProcessing Status = "processing"
	// StatusReady marks a fully ingested entity.
	StatusReady Status = "ready"
	// StatusNotReady marks an entity whose deletion has started.
	StatusNotReady Status = "not_ready"
)

// FileID identifies a stored file. Ids are assigned monotonically and never reused.
type FileID int64

// File stores information about one logical stored object. Parts are found by
// querying the part registry for FileID, not through the File itself.
type File struct {
	ID            FileID `json:"file_id"`
	Name          string `json:"file_name"`
	NumberOfParts int    `json:"number_of_parts"`
	Size          int64  `json:"size"`
	Status        Status `json:"status"`
}

// IsReady reports whether the file may be retrieved.
func (f File) IsReady() bool {
	return f.Status == StatusReady
}
