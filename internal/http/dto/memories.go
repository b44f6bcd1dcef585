package dto

type AddMemoryRequest struct {
	MemoryID    string `json:"memory_id"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
