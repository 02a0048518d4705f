package dtos

type AskRequest struct {
	Question string `json:"question" validate:"required"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type HealthResponse struct {
	Status string   `json:"status"`
	Rows   int      `json:"rows"`
	Modes  []string `json:"modes"`
}
