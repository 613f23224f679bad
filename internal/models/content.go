package models

import "time"

// CommitteeMember is a member of the programme committee shown on the homepage
type CommitteeMember struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FullName   string    `json:"full_name" gorm:"not null;size:200"`
	University string    `json:"university" gorm:"not null;size:200"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (CommitteeMember) TableName() string {
	return "committee_members"
}

// ProgramItem is one line of the conference programme, ordered by Position
type ProgramItem struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Schedule    string `json:"schedule" gorm:"not null;size:100"`
	Description string `json:"description" gorm:"not null;size:500"`
	Position    int    `json:"position" gorm:"not null;default:0"`
}

func (ProgramItem) TableName() string {
	return "program_items"
}

type SiteFileKind string

const (
	SiteFileProgram       SiteFileKind = "program"
	SiteFileTemplateWord  SiteFileKind = "template_word"
	SiteFileTemplateLatex SiteFileKind = "template_latex"
)

func (k SiteFileKind) IsValid() bool {
	switch k {
	case SiteFileProgram, SiteFileTemplateWord, SiteFileTemplateLatex:
		return true
	}
	return false
}

// SiteFile is a single downloadable file of the public site, keyed by kind
type SiteFile struct {
	Kind      SiteFileKind `json:"kind" gorm:"primaryKey;size:30"`
	Path      string       `json:"-" gorm:"not null;size:500"`
	Name      string       `json:"name" gorm:"not null;size:255"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (SiteFile) TableName() string {
	return "site_files"
}

type DocumentKind string

const (
	DocumentAwarded   DocumentKind = "awarded"
	DocumentSubmitted DocumentKind = "submitted"
	DocumentWorks     DocumentKind = "works"
)

func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentAwarded, DocumentSubmitted, DocumentWorks:
		return true
	}
	return false
}

// ConferenceDocument holds the published proceedings of one conference
type ConferenceDocument struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	ConferenceID  uint        `json:"conference_id" gorm:"uniqueIndex;not null"`
	Conference    *Conference `json:"conference,omitempty" gorm:"foreignKey:ConferenceID;constraint:OnDelete:CASCADE"`
	Name          string      `json:"name" gorm:"not null;size:200;default:'ŠVK'"`
	AwardedPath   *string     `json:"-" gorm:"size:500"`
	SubmittedPath *string     `json:"-" gorm:"size:500"`
	WorksPath     *string     `json:"-" gorm:"size:500"`
	// Available is filled from the paths before the document leaves the service
	Available []DocumentKind `json:"files" gorm:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (ConferenceDocument) TableName() string {
	return "conference_documents"
}

// PathFor returns the field holding the stored file of the given kind
func (d *ConferenceDocument) PathFor(kind DocumentKind) **string {
	switch kind {
	case DocumentAwarded:
		return &d.AwardedPath
	case DocumentSubmitted:
		return &d.SubmittedPath
	case DocumentWorks:
		return &d.WorksPath
	}
	return nil
}

// Files reports which kinds have a stored file
func (d *ConferenceDocument) Files() []DocumentKind {
	var out []DocumentKind
	for _, kind := range []DocumentKind{DocumentAwarded, DocumentSubmitted, DocumentWorks} {
		if p := d.PathFor(kind); *p != nil {
			out = append(out, kind)
		}
	}
	return out
}
