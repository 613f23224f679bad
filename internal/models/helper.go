package models

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	return []any{
		&User{},
		&Category{},
		&Conference{},
		&Question{},
		&Review{},
		&Paper{},
		&ReviewerAssignment{},
		&PaperStatusHistory{},
		&ArchivedReview{},
		&CommitteeMember{},
		&ProgramItem{},
		&SiteFile{},
		&ConferenceDocument{},
	}
}

// Actor is the authenticated caller resolved from a verified credential.
type Actor struct {
	UserID uint     `json:"user_id"`
	Role   UserRole `json:"role"`
}

func (a Actor) Is(role UserRole) bool {
	return a.Role == role
}
