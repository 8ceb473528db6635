package dto

// Every endpoint answers with the same envelope: {success, data|message}.

type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func NewError(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

func NewValidationError(details map[string]string) ErrorResponse {
	return ErrorResponse{Success: false, Message: "Validation failed", Details: details}
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

func NewData(data interface{}) DataResponse {
	return DataResponse{Success: true, Data: data}
}

type ListResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Total      int64       `json:"total"`
	Pagination Pagination  `json:"pagination"`
	Data       interface{} `json:"data"`
}

type PaginationParams struct {
	Page  int
	Limit int
}

func (p *PaginationParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p *PaginationParams) Pages(total int64) int64 {
	limit := int64(p.Limit)
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return pages
}
