package models

import (
	"time"

	"ormakal.in/pkg/content"

	"gorm.io/datatypes"
)

// Obituary is the memorial record. At most one row has IsActive = true.
type Obituary struct {
	BaseModel
	Name          content.Text                     `gorm:"embedded;embeddedPrefix:name_" json:"name"`
	DateOfBirth   time.Time                        `gorm:"type:date;not null" json:"dateOfBirth"`
	DateOfPassing time.Time                        `gorm:"type:date;not null" json:"dateOfPassing"`
	Biography     content.Text                     `gorm:"embedded;embeddedPrefix:biography_" json:"biography"`
	SurvivedBy    datatypes.JSONType[content.List] `gorm:"type:jsonb" json:"survivedBy"`
	Tribute       content.Text                     `gorm:"embedded;embeddedPrefix:tribute_" json:"tribute"`
	Funeral       Funeral                          `gorm:"embedded;embeddedPrefix:funeral_" json:"funeral"`
	Photos        datatypes.JSONSlice[Photo]       `gorm:"type:jsonb" json:"photos"`
	Language      content.Language                 `gorm:"type:varchar(20);not null;default:'english'" json:"language"`
	IsActive      bool                             `gorm:"not null;default:false;index" json:"isActive"`
}

// Funeral details. Only Venue and Address are translatable.
type Funeral struct {
	Venue         content.Text `gorm:"embedded;embeddedPrefix:venue_" json:"venue"`
	Address       content.Text `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Date          time.Time    `gorm:"type:timestamptz" json:"date"`
	Time          string       `gorm:"type:varchar(50)" json:"time"`
	GoogleMapsURL string       `gorm:"type:varchar(500)" json:"googleMapsUrl,omitempty"`
	LiveStreamURL string       `gorm:"type:varchar(500)" json:"liveStreamUrl,omitempty"`
}

// Photo is caption metadata for an image hosted on the image provider.
type Photo struct {
	CloudinaryID string       `json:"cloudinaryId"`
	URL          string       `json:"url"`
	Caption      content.Text `json:"caption"`
}

// SurvivedByList returns the decoded bilingual list.
func (o *Obituary) SurvivedByList() content.List {
	return o.SurvivedBy.Data()
}

// PhotoByURL finds stored caption metadata by exact URL match.
func (o *Obituary) PhotoByURL(url string) (Photo, bool) {
	for _, p := range o.Photos {
		if p.URL == url {
			return p, true
		}
	}
	return Photo{}, false
}
