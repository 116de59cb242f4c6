package models

// Condolence is a message left for an obituary.
// ObituaryID has no FK constraint: obituary deletion does not cascade.
type Condolence struct {
	BaseModel
	ObituaryID string `gorm:"type:uuid;not null;index:idx_condolences_display,priority:1" json:"obituaryId"`
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	Email      string `gorm:"type:varchar(320);not null" json:"email"`
	Message    string `gorm:"type:text;not null" json:"message"`
	IsApproved bool   `gorm:"not null;default:false;index:idx_condolences_display,priority:2" json:"isApproved"`
}
