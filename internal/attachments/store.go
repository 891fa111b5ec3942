// Package attachments stores diary media (photos, voice notes) and hands
// back opaque references. The journal records only the reference and the
// user's description; the bytes live outside the journal, either on the
// local filesystem or in an S3-compatible bucket.
package attachments

import "context"

// Store persists media bytes under an opaque reference.
type Store interface {
	// Save stores data and returns its reference. ext is the filename
	// extension including the dot, e.g. ".jpg"; it may be empty.
	Save(ctx context.Context, data []byte, ext string) (string, error)

	// Load returns the bytes behind a reference.
	Load(ctx context.Context, ref string) ([]byte, error)
}
