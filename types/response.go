package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type IngestResponse struct {
	DocumentID string `json:"document_id"`
	Sections   int    `json:"sections"`
}

type RecommendationsResponse struct {
	DocumentID      string           `json:"document_id"`
	FocusIndex      int              `json:"focus_index"`
	Recommendations []Recommendation `json:"recommendations"`
}

// SessionSnapshot is the UI-facing view of the reading session.
// FocusSectionIndex is -1 until a focus section has been set.
type SessionSnapshot struct {
	State             string           `json:"state"`
	ActiveDocumentID  string           `json:"active_document_id,omitempty"`
	FocusSectionIndex int              `json:"focus_section_index"`
	Recommendations   []Recommendation `json:"recommendations"`
	Loading           bool             `json:"loading"`
}
