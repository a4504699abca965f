package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MissingColumnsResponse error 422 cuando el archivo no trae todas las columnas obligatorias.
type MissingColumnsResponse struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Required []string `json:"required"`
	Missing  []string `json:"missing"`
}
