package models

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func NewErrorResponse(err string) ErrorResponse {
	return ErrorResponse{Status: "error", Error: err}
}

type DownloadResponse struct {
	Status         string `json:"status"`
	DownloadsCount int    `json:"downloads_count"`
}

type SaveResultResponse struct {
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
