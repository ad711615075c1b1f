package dto

// MediaTypePDF is the only declared media type that is split into pages.
const MediaTypePDF = "application/pdf"

// PageImage is one raster image handed to the OCR collaborator.
// Number is 1-based; a plain image upload is page 1.
type PageImage struct {
	Number int
	Data   []byte
}

// Document is the output of splitting an upload into page images.
type Document struct {
	Pages []PageImage
	// Paged is true when the pages were rasterized from a PDF. Paged documents get a
	// line break after every page transcription, a plain image keeps its text as-is.
	Paged bool
}

// TextAnnotation is one detected text region.
type TextAnnotation struct {
	Description string   `json:"description"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// HasConfidence reports whether the OCR collaborator scored this region.
func (a TextAnnotation) HasConfidence() bool {
	return a.Confidence != nil
}

// Detection is what the OCR collaborator returns for a single image.
// An empty Text means nothing was detected.
type Detection struct {
	Text        string
	Annotations []TextAnnotation
}

// Confidence returns a pointer suitable for TextAnnotation.Confidence.
func Confidence(v float64) *float64 {
	return &v
}
