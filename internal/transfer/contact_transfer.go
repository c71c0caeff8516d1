package transfer

type ContactInput struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Subject          string `json:"subject"`
	Message          string `json:"message"`
	DesejaNewsletter bool   `json:"deseja_newsletter"`
}

type SubscribeInput struct {
	Email    string `json:"email"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Fonte    string `json:"fonte"`
}
