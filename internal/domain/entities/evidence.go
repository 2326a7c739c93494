package entities

// EvidenceFile is a raw file received from a client or provider before upload.
type EvidenceFile struct {
	Filename string
	Data     []byte
}

// EvidenceKind separates photos from videos in adjustment evidence.
type EvidenceKind string

const (
	EvidencePhoto EvidenceKind = "photo"
	EvidenceVideo EvidenceKind = "video"
)
