package usecase

import (
	"context"
	"fmt"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"
	"log"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const maxEvidenceSize = 10 * 1024 * 1024

var evidenceKinds = map[string]entities.EvidenceKind{
	".jpg":  entities.EvidencePhoto,
	".jpeg": entities.EvidencePhoto,
	".png":  entities.EvidencePhoto,
	".gif":  entities.EvidencePhoto,
	".webp": entities.EvidencePhoto,
	".mp4":  entities.EvidenceVideo,
	".mov":  entities.EvidenceVideo,
	".avi":  entities.EvidenceVideo,
	".webm": entities.EvidenceVideo,
}

// EvidenceUploader writes request and adjustment evidence to object storage.
//
// Every file is checked before the first write. Writes then stop at the first
// failure; blobs already stored are left in place.
type EvidenceUploader struct {
	storage interfaces.IObjectStorage
	newName func() string
}

func NewEvidenceUploader(storage interfaces.IObjectStorage) *EvidenceUploader {
	return &EvidenceUploader{storage: storage, newName: uuid.NewString}
}

type inspectedFile struct {
	data        []byte
	ext         string
	contentType string
	kind        entities.EvidenceKind
}

// Upload stores files as {folder}/{ownerID}/{uuid}.{ext} and returns their URLs.
func (u *EvidenceUploader) Upload(ctx context.Context, folder, ownerID string, files []entities.EvidenceFile) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	inspected, err := inspectAll(files)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(inspected))
	for _, f := range inspected {
		key := fmt.Sprintf("%s/%s/%s%s", folder, ownerID, u.newName(), f.ext)
		url, err := u.put(ctx, key, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// UploadIndexed stores files as {folder}/{ownerID}/{kind}_{index}.{ext},
// numbering photos and videos separately, and returns both URL lists.
func (u *EvidenceUploader) UploadIndexed(ctx context.Context, folder, ownerID string, files []entities.EvidenceFile) (photos, videos []string, err error) {
	photos, videos = []string{}, []string{}
	if len(files) == 0 {
		return photos, videos, nil
	}
	inspected, err := inspectAll(files)
	if err != nil {
		return nil, nil, err
	}

	for _, f := range inspected {
		index := len(photos)
		if f.kind == entities.EvidenceVideo {
			index = len(videos)
		}
		key := fmt.Sprintf("%s/%s/%s_%d%s", folder, ownerID, f.kind, index, f.ext)
		url, err := u.put(ctx, key, f)
		if err != nil {
			return nil, nil, err
		}
		if f.kind == entities.EvidenceVideo {
			videos = append(videos, url)
		} else {
			photos = append(photos, url)
		}
	}
	return photos, videos, nil
}

func (u *EvidenceUploader) put(ctx context.Context, key string, f inspectedFile) (string, error) {
	if u.storage == nil {
		return "", fmt.Errorf("%w: object storage not configured", ErrStorage)
	}
	url, err := u.storage.Put(ctx, key, f.data, f.contentType)
	if err != nil {
		log.Printf("[evidence][usecase] upload failed key=%s err=%v", key, err)
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	log.Printf("[evidence][usecase] uploaded key=%s size=%d", key, len(f.data))
	return url, nil
}

func inspectAll(files []entities.EvidenceFile) ([]inspectedFile, error) {
	out := make([]inspectedFile, 0, len(files))
	for _, f := range files {
		in, err := inspect(f)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// inspect derives the extension from the filename, or from the content when
// the name has none.
func inspect(f entities.EvidenceFile) (inspectedFile, error) {
	if len(f.Data) == 0 {
		return inspectedFile{}, fmt.Errorf("%w: empty file %q", ErrValidation, f.Filename)
	}
	if len(f.Data) > maxEvidenceSize {
		return inspectedFile{}, fmt.Errorf("%w: file %q exceeds %d bytes", ErrValidation, f.Filename, maxEvidenceSize)
	}

	mtype := mimetype.Detect(f.Data)
	ext := strings.ToLower(filepath.Ext(f.Filename))
	if ext == "" {
		ext = mtype.Extension()
	}
	kind, ok := evidenceKinds[ext]
	if !ok {
		return inspectedFile{}, fmt.Errorf("%w: unsupported evidence type %q", ErrValidation, f.Filename)
	}
	return inspectedFile{data: f.Data, ext: ext, contentType: mtype.String(), kind: kind}, nil
}
