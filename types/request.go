package types

// IngestSection is a section as delivered by the upload collaborator.
// Indices are assigned from payload order.
type IngestSection struct {
	Title      string `json:"title"`
	PageNumber int    `json:"page_number"`
	Content    string `json:"content"`
}

type IngestDocumentRequest struct {
	DocumentID string          `json:"document_id,omitempty"`
	Title      string          `json:"title,omitempty"`
	Sections   []IngestSection `json:"sections"`
}

type ChangeFocusRequest struct {
	SectionIndex int `json:"section_index"`
}
