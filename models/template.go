package models

// TemplateData подстановки, доступные в шаблонах писем
type TemplateData struct {
	CandidateName string
	FirstName     string
	LastName      string
	JobTitle      string
	CompanyName   string
	Stage         string
	SenderName    string
}
