package dto

// Error codes carried in ErrorResponse.Error
const (
	ErrCodeRendering  = "RENDERING_FAILED"
	ErrCodeDetection  = "DETECTION_FAILED"
	ErrCodeUnexpected = "UNEXPECTED_ERROR"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractionResult is the response for a successful upload.
// ConfidenceLevel is a percentage in [0,100] rounded to 2 decimals.
type ExtractionResult struct {
	OriginalFileName string  `json:"original_file_name"`
	ConfidenceLevel  float64 `json:"confidence_level"`
	ExtractedText    string  `json:"extracted_text"`
}
