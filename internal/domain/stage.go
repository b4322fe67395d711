package domain

// Application stages. Ordered for display, but no transition between them is
// structurally forbidden here; callers decide what is sensible.
const (
	StageInquiry       = "inquiry"
	StageApplication   = "application"
	StageAssessment    = "assessment"
	StageApproval      = "approval"
	StageDocumentation = "documentation"
	StageSettlement    = "settlement"
	StageSettled       = "settled"
	StageDeclined      = "declined"
	StageWithdrawn     = "withdrawn"
	StageClosed        = "closed"
)

var Stages = []string{
	StageInquiry,
	StageApplication,
	StageAssessment,
	StageApproval,
	StageDocumentation,
	StageSettlement,
	StageSettled,
	StageDeclined,
	StageWithdrawn,
	StageClosed,
}

func ValidStage(s string) bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}
