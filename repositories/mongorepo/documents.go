package mongorepo

import (
	"time"

	"ormakal.in/models"
	"ormakal.in/pkg/content"

	"gorm.io/datatypes"
)

const (
	obituaryCollection   = "obituaries"
	condolenceCollection = "condolences"
)

type obituaryDocument struct {
	ID            string          `bson:"_id"`
	Name          flexText        `bson:"name"`
	DateOfBirth   time.Time       `bson:"dateOfBirth"`
	DateOfPassing time.Time       `bson:"dateOfPassing"`
	Biography     flexText        `bson:"biography"`
	SurvivedBy    flexList        `bson:"survivedBy"`
	Tribute       flexText        `bson:"tribute"`
	Funeral       funeralDocument `bson:"funeral"`
	Photos        []photoDocument `bson:"photos"`
	Language      string          `bson:"language"`
	IsActive      bool            `bson:"isActive"`
	CreatedAt     time.Time       `bson:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt"`
}

type funeralDocument struct {
	Venue         flexText  `bson:"venue"`
	Address       flexText  `bson:"address"`
	Date          time.Time `bson:"date"`
	Time          string    `bson:"time"`
	GoogleMapsURL string    `bson:"googleMapsUrl,omitempty"`
	LiveStreamURL string    `bson:"liveStreamUrl,omitempty"`
}

type photoDocument struct {
	CloudinaryID string   `bson:"cloudinaryId"`
	URL          string   `bson:"url"`
	Caption      flexText `bson:"caption"`
}

type condolenceDocument struct {
	ID         string    `bson:"_id"`
	ObituaryID string    `bson:"obituaryId"`
	Name       string    `bson:"name"`
	Email      string    `bson:"email"`
	Message    string    `bson:"message"`
	IsApproved bool      `bson:"isApproved"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

func newObituaryDocument(o *models.Obituary) obituaryDocument {
	photos := make([]photoDocument, 0, len(o.Photos))
	for _, p := range o.Photos {
		photos = append(photos, photoDocument{CloudinaryID: p.CloudinaryID, URL: p.URL, Caption: flexText(p.Caption)})
	}
	language := string(o.Language)
	if language == "" {
		language = string(content.English)
	}
	return obituaryDocument{
		ID:            o.ID,
		Name:          flexText(o.Name),
		DateOfBirth:   o.DateOfBirth,
		DateOfPassing: o.DateOfPassing,
		Biography:     flexText(o.Biography),
		SurvivedBy:    flexList(o.SurvivedBy.Data()),
		Tribute:       flexText(o.Tribute),
		Funeral: funeralDocument{
			Venue:         flexText(o.Funeral.Venue),
			Address:       flexText(o.Funeral.Address),
			Date:          o.Funeral.Date,
			Time:          o.Funeral.Time,
			GoogleMapsURL: o.Funeral.GoogleMapsURL,
			LiveStreamURL: o.Funeral.LiveStreamURL,
		},
		Photos:    photos,
		Language:  language,
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (d obituaryDocument) toModel() *models.Obituary {
	photos := make([]models.Photo, 0, len(d.Photos))
	for _, p := range d.Photos {
		photos = append(photos, models.Photo{CloudinaryID: p.CloudinaryID, URL: p.URL, Caption: content.Text(p.Caption)})
	}
	return &models.Obituary{
		BaseModel:     models.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		Name:          content.Text(d.Name),
		DateOfBirth:   d.DateOfBirth,
		DateOfPassing: d.DateOfPassing,
		Biography:     content.Text(d.Biography),
		SurvivedBy:    datatypes.NewJSONType(content.List(d.SurvivedBy)),
		Tribute:       content.Text(d.Tribute),
		Funeral: models.Funeral{
			Venue:         content.Text(d.Funeral.Venue),
			Address:       content.Text(d.Funeral.Address),
			Date:          d.Funeral.Date,
			Time:          d.Funeral.Time,
			GoogleMapsURL: d.Funeral.GoogleMapsURL,
			LiveStreamURL: d.Funeral.LiveStreamURL,
		},
		Photos:   datatypes.NewJSONSlice(photos),
		Language: content.ParseLanguage(d.Language),
		IsActive: d.IsActive,
	}
}

func newCondolenceDocument(c *models.Condolence) condolenceDocument {
	return condolenceDocument{
		ID:         c.ID,
		ObituaryID: c.ObituaryID,
		Name:       c.Name,
		Email:      c.Email,
		Message:    c.Message,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (d condolenceDocument) toModel() models.Condolence {
	return models.Condolence{
		BaseModel:  models.BaseModel{ID: d.ID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		ObituaryID: d.ObituaryID,
		Name:       d.Name,
		Email:      d.Email,
		Message:    d.Message,
		IsApproved: d.IsApproved,
	}
}
