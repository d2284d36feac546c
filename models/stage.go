package models

type Stage string

const (
	StageApplied   Stage = "Applied"
	StageScreening Stage = "Screening"
	StageInterview Stage = "Interview"
	StageTechnical Stage = "Technical"
	StageOffer     Stage = "Offer"
	StageHired     Stage = "Hired"
	StageRejected  Stage = "Rejected"
)

// StageList порядок колонок канбан-доски
var StageList = []Stage{
	StageApplied,
	StageScreening,
	StageInterview,
	StageTechnical,
	StageOffer,
	StageHired,
	StageRejected,
}

func (s Stage) IsValid() bool {
	for _, stage := range StageList {
		if stage == s {
			return true
		}
	}
	return false
}

// IsTerminal этапы, после которых кандидат обычно не двигается (не запрещено)
func (s Stage) IsTerminal() bool {
	return s == StageHired || s == StageRejected
}

// Index позиция этапа в воронке, -1 для неизвестного
func (s Stage) Index() int {
	for idx, stage := range StageList {
		if stage == s {
			return idx
		}
	}
	return -1
}

const DefaultBlockedAfterDays = 7
