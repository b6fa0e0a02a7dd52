package contact

// Form - форма обратной связи
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Result - ответ на отправку формы: подтверждение и очищенная форма
type Result struct {
	Message string `json:"message"`
	Form    Form   `json:"form"`
}
