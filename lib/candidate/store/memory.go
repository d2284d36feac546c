package candidatestore

import (
	"hr-dashboard-backend/lib/memdb"
	"hr-dashboard-backend/lib/pipeline/board"
	"hr-dashboard-backend/models"
	dbmodels "hr-dashboard-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
)

func NewMemoryInstance() Provider {
	return &memoryImpl{
		table: memdb.NewTable(
			func(rec dbmodels.Candidate) string { return rec.ID },
			func(rec dbmodels.Candidate) dbmodels.Candidate {
				rec.Skills = append([]string(nil), rec.Skills...)
				return rec
			}),
	}
}

type memoryImpl struct {
	table *memdb.Table[dbmodels.Candidate]
}

func (i memoryImpl) Create(rec dbmodels.Candidate) (string, error) {
	if rec.ID == "" {
		rec.ID = memdb.NewID()
	}
	if _, exist := i.table.Get(rec.ID); exist {
		return "", errors.New("запись с таким идентификатором уже существует")
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	i.table.Insert(rec)
	return rec.ID, nil
}

func (i memoryImpl) Save(rec dbmodels.Candidate) error {
	found := i.table.Update(rec.ID, func(stored *dbmodels.Candidate) {
		rec.Stage = stored.Stage
		rec.StageEnteredAt = stored.StageEnteredAt
		rec.CreatedAt = stored.CreatedAt
		rec.UpdatedAt = time.Now()
		rec.Skills = append([]string(nil), rec.Skills...)
		*stored = rec
	})
	if !found {
		return errors.New("запись не найдена")
	}
	return nil
}

func (i memoryImpl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec, ok := i.table.Get(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (i memoryImpl) List(filter dbmodels.CandidateFilter) ([]dbmodels.Candidate, int64, error) {
	list := i.table.Find(func(rec dbmodels.Candidate) bool {
		return matchFilter(rec, filter)
	})
	rowCount := int64(len(list))
	if filter.NoPaging || filter.Limit <= 0 {
		return list, rowCount, nil
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	from := (page - 1) * filter.Limit
	if from >= len(list) {
		return []dbmodels.Candidate{}, rowCount, nil
	}
	to := from + filter.Limit
	if to > len(list) {
		to = len(list)
	}
	return list[from:to], rowCount, nil
}

func (i memoryImpl) ListAll() ([]dbmodels.Candidate, error) {
	return i.table.List(), nil
}

func (i memoryImpl) ChangeStage(id string, from, to models.Stage, at time.Time) (changed bool, err error) {
	i.table.Mutate(func(rows []dbmodels.Candidate) {
		for idx := range rows {
			if rows[idx].ID == id && rows[idx].Stage != from {
				return
			}
		}
		changed = board.MoveCandidateToStage(rows, id, to, at)
	})
	return changed, nil
}

func (i memoryImpl) Count() (int64, error) {
	return int64(i.table.Len()), nil
}

func matchFilter(rec dbmodels.Candidate, filter dbmodels.CandidateFilter) bool {
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(rec.GetFullName()), search) &&
			!strings.Contains(strings.ToLower(rec.Email), search) {
			return false
		}
	}
	if filter.Stage != "" && rec.Stage != filter.Stage {
		return false
	}
	if filter.JobID != "" && rec.JobID != filter.JobID {
		return false
	}
	if filter.Source != "" && rec.Source != filter.Source {
		return false
	}
	return true
}
