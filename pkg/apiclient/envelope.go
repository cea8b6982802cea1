package apiclient

// CodeOK - код успеха в конверте API.
const CodeOK = 200

// Envelope - обёртка {code, message, result} каждого ответа API.
type Envelope[R any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Result  R      `json:"result"`
}

// Pagination передаётся в UI так, как её прислал сервер.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems,omitempty"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// Page - результат любого endpoint коллекции.
type Page[T any] struct {
	Items []T `json:"items"`
	Pagination
}
