package model

// ErrorResponse is the single external error shape.
type ErrorResponse struct {
	Error string `json:"error"`
}
