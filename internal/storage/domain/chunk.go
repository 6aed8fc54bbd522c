package domain

import "fmt"

// PartID identifies a chunk of a file.
type PartID int64

// FilePart represents one chunk of a File.
type FilePart struct {
	ID             PartID `json:"part_id"`
	FileID         FileID `json:"file_id"`
	SequenceNumber int    `json:"sequence_number"`
	// MD5Hash is the hex digest of the uncompressed chunk, set once stored.
	MD5Hash string `json:"md5_hash"`
	Status  Status `json:"status"`
}

// ArtifactKey returns the on-disk identity of the part's chunk artifact.
func (p FilePart) ArtifactKey() ArtifactKey {
	return ArtifactKey{FileID: p.FileID, SequenceNumber: p.SequenceNumber}
}

// ArtifactKey deterministically names a chunk artifact.
type ArtifactKey struct {
	FileID         FileID
	SequenceNumber int
}

// Name is the artifact base file name.
func (k ArtifactKey) Name() string {
	return fmt.Sprintf("part_%d_%d.dat", k.FileID, k.SequenceNumber)
}
