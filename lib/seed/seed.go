package seed

import (
	budgetstore "hr-dashboard-backend/lib/budget/store"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	jobstore "hr-dashboard-backend/lib/job/store"
	messagetemplatestore "hr-dashboard-backend/lib/message-template/store"
	notificationstore "hr-dashboard-backend/lib/notification/store"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Stores struct {
	Candidates    candidatestore.Provider
	Jobs          jobstore.Provider
	Templates     messagetemplatestore.Provider
	Budgets       budgetstore.Provider
	Notifications notificationstore.Provider
}

// Load заполняет хранилище демонстрационными данными, если кандидатов и вакансий еще нет
func Load(stores Stores, now time.Time) error {
	count, err := stores.Candidates.Count()
	if err != nil {
		return errors.Wrap(err, "ошибка проверки наличия кандидатов")
	}
	jobs, err := stores.Jobs.List(dbmodels.JobFilter{})
	if err != nil {
		return errors.Wrap(err, "ошибка проверки наличия вакансий")
	}
	if count > 0 || len(jobs) > 0 {
		log.Info("хранилище уже заполнено, демонстрационные данные не загружаются")
		return nil
	}
	day := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour) }

	jobIDs := make([]string, 0, len(sampleJobs))
	for _, rec := range sampleJobs {
		id, err := stores.Jobs.Create(rec)
		if err != nil {
			return errors.Wrapf(err, "ошибка добавления вакансии %s", rec.Title)
		}
		jobIDs = append(jobIDs, id)
	}

	for _, item := range sampleCandidates {
		rec := item.rec
		rec.JobID = jobIDs[item.job]
		rec.AppliedAt = day(item.appliedDaysAgo)
		rec.StageEnteredAt = day(item.stageDaysAgo)
		rec.CreatedAt = rec.AppliedAt
		if _, err := stores.Candidates.Create(rec); err != nil {
			return errors.Wrapf(err, "ошибка добавления кандидата %s", rec.GetFullName())
		}
	}

	for _, rec := range sampleTemplates {
		if _, err := stores.Templates.Create(rec); err != nil {
			return errors.Wrapf(err, "ошибка добавления шаблона %s", rec.Name)
		}
	}

	for _, item := range sampleBudgets {
		id, err := stores.Budgets.Create(item.rec)
		if err != nil {
			return errors.Wrapf(err, "ошибка добавления бюджета %s", item.rec.Name)
		}
		for idx, expense := range item.expenses {
			expense.BudgetID = id
			expense.Date = day(3 + idx*7)
			if _, err = stores.Budgets.AddExpense(expense); err != nil {
				return errors.Wrapf(err, "ошибка добавления расхода в бюджет %s", item.rec.Name)
			}
		}
	}

	for idx, rec := range sampleNotifications {
		rec.CreatedAt = now.Add(-time.Duration(idx+1) * time.Hour)
		if _, err := stores.Notifications.Create(rec); err != nil {
			return errors.Wrap(err, "ошибка добавления уведомления")
		}
	}
	log.WithFields(log.Fields{
		"jobs":       len(sampleJobs),
		"candidates": len(sampleCandidates),
		"templates":  len(sampleTemplates),
		"budgets":    len(sampleBudgets),
	}).Info("загружены демонстрационные данные")
	return nil
}

var sampleJobs = []dbmodels.JobPosting{
	{
		Title:          "Senior Go Developer",
		Department:     "Engineering",
		Location:       "Remote",
		EmploymentType: models.EmploymentFullTime,
		Status:         models.JobStatusOpen,
		SalaryFrom:     250000,
		SalaryTo:       350000,
		Description:    "Разработка backend сервисов платформы найма.",
		Requirements:   []string{"Go", "PostgreSQL", "Docker", "Kubernetes"},
		Openings:       2,
	},
	{
		Title:          "Frontend Engineer",
		Department:     "Engineering",
		Location:       "Москва",
		EmploymentType: models.EmploymentFullTime,
		Status:         models.JobStatusOpen,
		SalaryFrom:     200000,
		SalaryTo:       280000,
		Description:    "Интерфейсы дашборда рекрутера.",
		Requirements:   []string{"TypeScript", "React", "CSS"},
		Openings:       1,
	},
	{
		Title:          "Product Designer",
		Department:     "Design",
		Location:       "Санкт-Петербург",
		EmploymentType: models.EmploymentContract,
		Status:         models.JobStatusPaused,
		SalaryFrom:     150000,
		SalaryTo:       220000,
		Description:    "Проектирование пользовательских сценариев.",
		Requirements:   []string{"Figma", "UX Research"},
		Openings:       1,
	},
	{
		Title:          "Data Analyst Intern",
		Department:     "Analytics",
		Location:       "Remote",
		EmploymentType: models.EmploymentIntern,
		Status:         models.JobStatusDraft,
		Requirements:   []string{"SQL", "Python"},
		Openings:       3,
	},
}

type sampleCandidate struct {
	rec            dbmodels.Candidate
	job            int
	appliedDaysAgo int
	stageDaysAgo   int
}

var sampleCandidates = []sampleCandidate{
	{dbmodels.Candidate{FirstName: "Анна", LastName: "Иванова", Email: "anna.ivanova@mail.test", Phone: "+7 900 111-22-33",
		Source: models.CandidateSourceLinkedIn, Stage: models.StageApplied, Rating: 4, Skills: []string{"Go", "PostgreSQL", "Docker"},
		Location: "Москва", ExperienceYears: 6}, 0, 2, 2},
	{dbmodels.Candidate{FirstName: "Борис", LastName: "Смирнов", Email: "boris.smirnov@mail.test", Phone: "+7 900 222-33-44",
		Source: models.CandidateSourceReferral, Stage: models.StageScreening, Rating: 3, Skills: []string{"Go", "Kafka"},
		Location: "Казань", ExperienceYears: 4}, 0, 14, 10},
	{dbmodels.Candidate{FirstName: "Виктория", LastName: "Кузнецова", Email: "victoria.k@mail.test",
		Source: models.CandidateSourceCareerSite, Stage: models.StageInterview, Rating: 5, Skills: []string{"Go", "Kubernetes", "gRPC"},
		Location: "Remote", ExperienceYears: 8}, 0, 20, 3},
	{dbmodels.Candidate{FirstName: "Григорий", LastName: "Попов", Email: "g.popov@mail.test",
		Source: models.CandidateSourceAgency, Stage: models.StageTechnical, Rating: 4, Skills: []string{"Go", "Docker"},
		Location: "Новосибирск", ExperienceYears: 5}, 0, 25, 5},
	{dbmodels.Candidate{FirstName: "Дарья", LastName: "Волкова", Email: "daria.volkova@mail.test",
		Source: models.CandidateSourceLinkedIn, Stage: models.StageOffer, Rating: 5, Skills: []string{"TypeScript", "React"},
		Location: "Москва", ExperienceYears: 7}, 1, 30, 2},
	{dbmodels.Candidate{FirstName: "Евгений", LastName: "Соколов", Email: "e.sokolov@mail.test",
		Source: models.CandidateSourceJobBoard, Stage: models.StageHired, Rating: 4, Skills: []string{"React", "CSS"},
		Location: "Москва", ExperienceYears: 3}, 1, 45, 12},
	{dbmodels.Candidate{FirstName: "Жанна", LastName: "Морозова", Email: "zh.morozova@mail.test",
		Source: models.CandidateSourceCareerSite, Stage: models.StageRejected, Rating: 2, Skills: []string{"Figma"},
		Location: "Санкт-Петербург", ExperienceYears: 1}, 2, 40, 20},
	{dbmodels.Candidate{FirstName: "Игорь", LastName: "Лебедев", Email: "igor.lebedev@mail.test",
		Source: models.CandidateSourceReferral, Stage: models.StageScreening, Rating: 3, Skills: []string{"Figma", "UX Research"},
		Location: "Remote", ExperienceYears: 4}, 2, 9, 9},
	{dbmodels.Candidate{FirstName: "Ксения", LastName: "Новикова", Email: "k.novikova@mail.test",
		Source: models.CandidateSourceJobBoard, Stage: models.StageApplied, Rating: 3, Skills: []string{"SQL", "Python"},
		Location: "Екатеринбург", ExperienceYears: 0}, 3, 1, 1},
}

var sampleTemplates = []dbmodels.EmailTemplate{
	{
		Name:         "Приглашение на интервью",
		Subject:      "Интервью: {{.JobTitle}} в {{.CompanyName}}",
		Body:         "Здравствуйте, {{.FirstName}}!\n\nПриглашаем вас на интервью на позицию {{.JobTitle}}.\n\n{{.SenderName}}",
		Category:     "interview",
		TriggerStage: models.StageInterview,
		AutoSend:     true,
	},
	{
		Name:         "Предложение о работе",
		Subject:      "Предложение о работе: {{.JobTitle}}",
		Body:         "{{.CandidateName}}, рады сообщить, что готовы сделать вам предложение в {{.CompanyName}}.\n\n{{.SenderName}}",
		Category:     "offer",
		TriggerStage: models.StageOffer,
		AutoSend:     true,
	},
	{
		Name:         "Отказ",
		Subject:      "{{.CompanyName}}: результат рассмотрения",
		Body:         "{{.FirstName}}, благодарим за интерес к позиции {{.JobTitle}}. К сожалению, мы не готовы продолжить.\n\n{{.SenderName}}",
		Category:     "rejection",
		TriggerStage: models.StageRejected,
	},
	{
		Name:         "Подтверждение отклика",
		Subject:      "Мы получили ваш отклик",
		Body:         "{{.FirstName}}, спасибо за отклик на вакансию {{.JobTitle}}. Мы свяжемся с вами в ближайшее время.",
		Category:     "general",
	},
}

type sampleBudget struct {
	rec      dbmodels.Budget
	expenses []dbmodels.BudgetExpense
}

var sampleBudgets = []sampleBudget{
	{
		rec: dbmodels.Budget{Name: "Найм разработчиков", Department: "Engineering", Period: "2024-Q3", Allocated: 1500000},
		expenses: []dbmodels.BudgetExpense{
			{Category: models.ExpenseJobBoards, Amount: 180000, Description: "Размещение вакансий"},
			{Category: models.ExpenseAgencies, Amount: 420000, Description: "Кадровое агентство"},
			{Category: models.ExpenseTools, Amount: 60000, Description: "Подписка ATS"},
		},
	},
	{
		rec: dbmodels.Budget{Name: "Дизайн", Department: "Design", Period: "2024-Q3", Allocated: 300000},
		expenses: []dbmodels.BudgetExpense{
			{Category: models.ExpenseEvents, Amount: 90000, Description: "Карьерная конференция"},
			{Category: models.ExpenseReferralBonus, Amount: 50000, Description: "Реферальный бонус"},
		},
	},
}

var sampleNotifications = []dbmodels.Notification{
	{Type: models.NotificationInfo, Title: "Добро пожаловать", Message: "Демонстрационные данные загружены"},
	{Type: models.NotificationStageChange, Title: "Смена этапа", Message: "Виктория Кузнецова переведена на этап Interview"},
}
