package domain

import "time"

// ContentType identifies the medium a record was captured from.
type ContentType string

// Recognised content types.
const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
	ContentTypeWeb   ContentType = "web"
	ContentTypePDF   ContentType = "pdf"
	ContentTypeMixed ContentType = "mixed"
)

// IsValid returns true if the content type is recognised.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeText, ContentTypeImage, ContentTypeWeb, ContentTypePDF, ContentTypeMixed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ContentType) String() string {
	return string(t)
}

// ContentRecord represents a single captured piece of content.
// Records are owned by the external capture/storage layer; the engine
// only reads them and writes derived results keyed by ID.
type ContentRecord struct {
	// ID is the unique identifier, immutable once created.
	ID string

	// Type is the capture medium (text, image, web, pdf, mixed).
	Type ContentType

	// Title is the human-readable title.
	Title string

	// Body is the full text content.
	Body string

	// OCRText is recognised text for image captures. Optional.
	OCRText string

	// Source labels where the record came from (e.g. "clipboard", "drop-folder").
	Source string

	// CreatedAt is when the content was captured.
	CreatedAt time.Time
}

// CombinedText returns body and OCR text joined for analysis.
func (r ContentRecord) CombinedText() string {
	if r.OCRText == "" {
		return r.Body
	}
	if r.Body == "" {
		return r.OCRText
	}
	return r.Body + "\n" + r.OCRText
}
