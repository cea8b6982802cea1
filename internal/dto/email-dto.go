package dto

// BulkEmailDTO описывает одно уведомление многим получателям. Получатели берутся
// из явного списка, из текущих строк вида или из обоих.
type BulkEmailDTO struct {
	Subject    string   `json:"subject" validate:"required,max=200"`
	Body       string   `json:"body" validate:"required,max=20000"`
	Recipients []string `json:"recipients" validate:"omitempty,max=1000,dive,email"`
	ViewID     string   `json:"viewId" validate:"omitempty,uuid4"`
	ReplyTo    string   `json:"replyTo" validate:"omitempty,email"`
}

type BulkEmailResultDTO struct {
	Requested  int      `json:"requested"`
	Sent       int      `json:"sent"`
	Failed     int      `json:"failed"`
	MessageIDs []string `json:"messageIds,omitempty"`
}
