// Package models contains the request and response types shared by the
// HTTP handlers.
package models

// StegoResponse is the JSON body returned by the embed endpoint when
// it cannot stream back a stego image.
type StegoResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	PSNR    float64 `json:"psnr,omitempty"`
}

// ExtractResponse is the JSON body returned by the extract endpoint
// when it cannot stream back a reconstructed secret.
type ExtractResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
