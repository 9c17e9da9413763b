package services

import "context"

// Notifier delivers messages, optionally with an attached document, to a
// party's phone. Implementations carry a fixed timeout; callers treat any
// failure as non-fatal.
type Notifier interface {
	Send(ctx context.Context, phoneNumber string, message string) error
	SendDocument(ctx context.Context, phoneNumber string, message string, documentURL string, fileName string) error
}

// DocumentStore uploads a document and returns a durable public URL.
type DocumentStore interface {
	UploadPDF(ctx context.Context, fileName string, data []byte) (string, error)
}
