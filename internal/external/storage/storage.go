// Package storage holds the remote photo-evidence store. Activity photos
// live on a web-hosting box reached over FTP; the core only ever needs to
// upload a file or remove one when its visit is deleted.
package storage

import "context"

type Store interface {
	Upload(ctx context.Context, localPath, employeeName, activityType, remoteFilename string) (string, error)
	Delete(ctx context.Context, remotePath string) error
}

// Noop satisfies Store when no remote storage is configured. Uploads fail
// loudly; deletes succeed so local cleanup can proceed.
type Noop struct{}

func (Noop) Upload(ctx context.Context, localPath, employeeName, activityType, remoteFilename string) (string, error) {
	return "", ErrNotConfigured
}

func (Noop) Delete(ctx context.Context, remotePath string) error {
	return nil
}
