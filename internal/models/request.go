package models

type SaveResultRequest struct {
	// Image is a base64 data URI ("data:<mime>;base64,<payload>") holding the
	// composited photo produced client-side.
	Image string `json:"image"`
}
