// Package relay holds the relay wire types and an HTTP client for them.
package relay

// Error messages returned by the relay.
const (
	MsgContentRequired = "Content is required"
	MsgHTMLRequired    = "HTML content is required"
	MsgSummaryFailed   = "Failed to generate summary"
	MsgCleanFailed     = "Failed to clean content"
	MsgExtractFailed   = "Failed to extract content"
)

// SummarizeRequest is the body of POST /summarize.
type SummarizeRequest struct {
	Content string `json:"content"`
	Mode    string `json:"mode,omitempty"`
}

// SummarizeResponse is the success body of POST /summarize.
type SummarizeResponse struct {
	Summary string `json:"summary"`
}

// CleanRequest is the body of POST /clean.
type CleanRequest struct {
	HTML string `json:"html"`
}

// CleanResponse is the success body of POST /clean.
type CleanResponse struct {
	Cleaned string `json:"cleaned"`
}

// ExtractRequest is the body of POST /extract.
type ExtractRequest struct {
	HTML   string `json:"html"`
	Engine string `json:"engine,omitempty"`
	Format string `json:"format,omitempty"`
}

// ExtractResponse is the success body of POST /extract.
type ExtractResponse struct {
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
	ReadTime  string `json:"readTime"`
	Engine    string `json:"engine"`
	Strategy  string `json:"strategy,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
