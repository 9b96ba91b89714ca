package ports

import (
	"context"
	"io"
)

type Invitation struct {
	To        string
	GuestName string
	EventType string
	When      string
	Location  string
	RSVPURL   string
}

type Mailer interface {
	SendInvitation(ctx context.Context, inv Invitation) error
	SendRecoveryCode(ctx context.Context, to, name, code string) error
}

type Uploader interface {
	// Upload stores the file and returns its public URL.
	Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
}
