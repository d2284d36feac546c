package candidate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	candidatestore "hr-dashboard-backend/lib/candidate/store"
	xlsexport "hr-dashboard-backend/lib/export/xls"
	jobstore "hr-dashboard-backend/lib/job/store"
	"hr-dashboard-backend/models"
	apimodels "hr-dashboard-backend/models/api"
	candidateapimodels "hr-dashboard-backend/models/api/candidate"
	dbmodels "hr-dashboard-backend/models/db"
)

func getInstance(t *testing.T) (Provider, string) {
	jobs := jobstore.NewMemoryInstance()
	jobID, err := jobs.Create(dbmodels.JobPosting{Title: "Data Engineer", Status: models.JobStatusOpen})
	require.Nil(t, err)
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return NewInstance(candidatestore.NewMemoryInstance(), jobs, 7, func() time.Time { return now }), jobID
}

func TestCandidateHandler(t *testing.T) {
	t.Run(`create validation`, func(t *testing.T) {
		handler, jobID := getInstance(t)
		cases := []struct {
			data candidateapimodels.CandidateData
			msg  string
		}{
			{candidateapimodels.CandidateData{LastName: "L", Email: "a@b.c"}, "не указано имя кандидата"},
			{candidateapimodels.CandidateData{FirstName: "F", Email: "a@b.c"}, "не указана фамилия кандидата"},
			{candidateapimodels.CandidateData{FirstName: "F", LastName: "L"}, "не указана почта кандидата"},
			{candidateapimodels.CandidateData{FirstName: "F", LastName: "L", Email: "not-an-email"}, "некорректный адрес почты кандидата"},
			{candidateapimodels.CandidateData{FirstName: "F", LastName: "L", Email: "a@b.c", Rating: 6}, "рейтинг должен быть от 0 до 5"},
		}
		for _, c := range cases {
			_, err := handler.Create(c.data)
			require.NotNil(t, err)
			require.Equal(t, c.msg, err.Error())
		}
		_, err := handler.Create(candidateapimodels.CandidateData{FirstName: "F", LastName: "L", Email: "a@b.c", JobID: "missing"})
		require.ErrorIs(t, err, ErrJobNotFound)
		_, err = handler.Create(candidateapimodels.CandidateData{FirstName: "F", LastName: "L", Email: "a@b.c", JobID: jobID})
		require.Nil(t, err)
	})

	t.Run(`create defaults`, func(t *testing.T) {
		handler, jobID := getInstance(t)
		id, err := handler.Create(candidateapimodels.CandidateData{
			FirstName: " Anna ",
			LastName:  "Petrova",
			Email:     "anna@mail.test",
			JobID:     jobID,
		})
		require.Nil(t, err)
		view, err := handler.Get(id)
		require.Nil(t, err)
		require.Equal(t, "Anna Petrova", view.FullName)
		require.Equal(t, models.StageApplied, view.Stage)
		require.Equal(t, models.CandidateSourceCareerSite, view.Source)
		require.Equal(t, "Data Engineer", view.JobTitle)
		require.Equal(t, 0, view.Duration)
	})

	t.Run(`update and get`, func(t *testing.T) {
		handler, _ := getInstance(t)
		id, err := handler.Create(candidateapimodels.CandidateData{FirstName: "Boris", LastName: "Ivanov", Email: "boris@mail.test"})
		require.Nil(t, err)
		err = handler.Update(id, candidateapimodels.CandidateData{FirstName: "Boris", LastName: "Ivanov", Email: "boris@corp.test", Rating: 4})
		require.Nil(t, err)
		view, err := handler.Get(id)
		require.Nil(t, err)
		require.Equal(t, "boris@corp.test", view.Email)
		require.Equal(t, 4, view.Rating)

		err = handler.Update("unknown", candidateapimodels.CandidateData{FirstName: "B", LastName: "I", Email: "b@i.c"})
		require.ErrorIs(t, err, ErrNotFound)
		_, err = handler.Get("unknown")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run(`list and export`, func(t *testing.T) {
		xlsexport.NewHandler()
		handler, _ := getInstance(t)
		for _, name := range []string{"Anna", "Boris", "Clara"} {
			_, err := handler.Create(candidateapimodels.CandidateData{FirstName: name, LastName: "Test", Email: name + "@mail.test"})
			require.Nil(t, err)
		}
		list, count, err := handler.List(candidateapimodels.CandidateFilter{Pagination: apimodels.Pagination{Limit: 2, Page: 1}})
		require.Nil(t, err)
		require.Equal(t, int64(3), count)
		require.Len(t, list, 2)

		buf, err := handler.ExportXls(candidateapimodels.CandidateFilter{Search: "clara"})
		require.Nil(t, err)
		f, err := excelize.OpenReader(buf)
		require.Nil(t, err)
		defer f.Close()
		rows, err := f.GetRows("Candidates")
		require.Nil(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "Clara Test", rows[1][0])
	})
}
