package types

import "fmt"

// Section is one contiguous span of a parsed document. Sections are
// immutable once created; Index is zero-based and dense within a document.
type Section struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	PageNumber int    `json:"page_number"`
	Content    string `json:"content"`
}

// Document is a parsed document as delivered by the upstream extractor.
// ID is opaque and stable per upload.
type Document struct {
	ID       string    `json:"id"`
	Title    string    `json:"title,omitempty"`
	Sections []Section `json:"sections"`
}

// Validate checks the section invariants: indices must be dense and
// zero-based, page numbers must be at least 1.
func (d *Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("document id is required")
	}
	for i, section := range d.Sections {
		if section.Index != i {
			return fmt.Errorf("section %d has index %d, expected dense zero-based indices", i, section.Index)
		}
		if section.PageNumber < 1 {
			return fmt.Errorf("section %d has page number %d, expected >= 1", i, section.PageNumber)
		}
	}
	return nil
}

// Clone returns a deep copy of the document so that callers across an
// execution boundary never share section slices.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	clone := &Document{
		ID:       d.ID,
		Title:    d.Title,
		Sections: make([]Section, len(d.Sections)),
	}
	copy(clone.Sections, d.Sections)
	return clone
}

// Recommendation is a single related-section suggestion. Recommendations
// are ephemeral and recomputed per request, never persisted.
// SourceIndex is -1 when the producing service does not report it.
type Recommendation struct {
	SectionTitle string  `json:"section_title"`
	PageNumber   int     `json:"page_number"`
	SourceIndex  int     `json:"source_index"`
	Score        float64 `json:"score"`
}
