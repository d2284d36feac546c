package job

import (
	"testing"

	"github.com/stretchr/testify/require"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/models"
	jobapimodels "hr-dashboard-backend/models/api/job"
	dbmodels "hr-dashboard-backend/models/db"
)

func TestJobHandler(t *testing.T) {
	candidates := candidatestore.NewMemoryInstance()
	handler := NewInstance(jobstore.NewMemoryInstance(), candidates)

	t.Run(`create validation`, func(t *testing.T) {
		_, err := handler.Create(jobapimodels.JobData{Department: "IT", Location: "Remote"})
		require.Equal(t, "не указано название вакансии", err.Error())
		_, err = handler.Create(jobapimodels.JobData{Title: "QA", Department: "IT", Location: "Remote", SalaryFrom: 10, SalaryTo: 5})
		require.Equal(t, "нижняя граница зарплаты больше верхней", err.Error())
	})

	t.Run(`create, list and status`, func(t *testing.T) {
		id, err := handler.Create(jobapimodels.JobData{Title: "Backend Engineer", Department: "IT", Location: "Berlin"})
		require.Nil(t, err)
		_, err = handler.Create(jobapimodels.JobData{Title: "Sales Manager", Department: "Sales", Location: "Paris"})
		require.Nil(t, err)
		_, err = candidates.Create(dbmodels.Candidate{FirstName: "A", LastName: "B", JobID: id, Stage: models.StageApplied})
		require.Nil(t, err)

		view, err := handler.Get(id)
		require.Nil(t, err)
		require.Equal(t, models.JobStatusDraft, view.Status)
		require.Equal(t, models.EmploymentFullTime, view.EmploymentType)
		require.Equal(t, 1, view.Openings)
		require.Equal(t, 1, view.CandidateCount)

		require.Nil(t, handler.ChangeStatus(id, models.JobStatusOpen))
		require.ErrorIs(t, handler.ChangeStatus(id, models.JobStatus("archived")), ErrUnknownStatus)
		require.ErrorIs(t, handler.ChangeStatus("missing", models.JobStatusOpen), ErrNotFound)

		list, err := handler.List(jobapimodels.JobFilter{Status: models.JobStatusOpen})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Backend Engineer", list[0].Title)

		list, err = handler.List(jobapimodels.JobFilter{Search: "sales"})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Sales", list[0].Department)
	})

	t.Run(`update`, func(t *testing.T) {
		id, err := handler.Create(jobapimodels.JobData{Title: "Designer", Department: "Product", Location: "Remote"})
		require.Nil(t, err)
		require.Nil(t, handler.Update(id, jobapimodels.JobData{Title: "Senior Designer", Department: "Product", Location: "Remote", Openings: 2}))
		view, err := handler.Get(id)
		require.Nil(t, err)
		require.Equal(t, "Senior Designer", view.Title)
		require.Equal(t, 2, view.Openings)
		require.ErrorIs(t, handler.Update("missing", jobapimodels.JobData{Title: "x", Department: "y", Location: "z"}), ErrNotFound)
	})
}
