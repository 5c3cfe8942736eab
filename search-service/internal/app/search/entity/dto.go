package entity

// SubmitProductRequest - товар, который пользователь добавляет вручную
type SubmitProductRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Brand       string `json:"brand" validate:"required,max=100"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	Marketplace string `json:"marketplace" validate:"required,max=100"`
	URL         string `json:"url" validate:"omitempty,url,max=2000"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Sold        *int64 `json:"sold" validate:"omitempty,gte=0"`
}

// PriceFeedbackRequest - сообщение о новой цене существующего товара
type PriceFeedbackRequest struct {
	SKU           string `json:"sku" validate:"required,max=120"`
	NewPrice      int64  `json:"newPrice" validate:"required,gt=0"`
	PreviousPrice *int64 `json:"previousPrice" validate:"omitempty,gt=0"`
	ProductName   string `json:"productName" validate:"omitempty,max=200"`
	Marketplace   string `json:"marketplace" validate:"omitempty,max=100"`
	URL           string `json:"url" validate:"omitempty,url,max=2000"`
	Note          string `json:"note" validate:"omitempty,max=500"`
}

// ManualResponse - ответ на ручную запись
type ManualResponse struct {
	OK      bool        `json:"ok"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
	SKU     string      `json:"sku,omitempty"`
	Entry   interface{} `json:"entry"`
}

type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
