package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ormakal.in/configs/configslog"
	"ormakal.in/models"
	"ormakal.in/pkg/content"
	"ormakal.in/pkg/gallery"
	"ormakal.in/pkg/localization"
	"ormakal.in/repositories"

	"go.uber.org/zap"
)

// ObituaryView is an obituary with every translatable field resolved for one language.
type ObituaryView struct {
	ID            string
	Name          string
	DateOfBirth   time.Time
	DateOfPassing time.Time
	Biography     string
	SurvivedBy    []string
	Tribute       string
	Funeral       FuneralView
}

type FuneralView struct {
	Venue         string
	Address       string
	Date          time.Time
	Time          string
	GoogleMapsURL string
	LiveStreamURL string
}

// CondolenceView is a public condolence. Text is shown as written.
type CondolenceView struct {
	ID        string
	Name      string
	Message   string
	CreatedAt time.Time
}

type PhotoView struct {
	PublicID string
	URL      string
	Width    int
	Height   int
	Position int
	Caption  string
}

// MemorialPage is the home page model. Configured is false when no obituary is active.
type MemorialPage struct {
	Configured  bool
	Language    content.Language
	Obituary    *ObituaryView
	Condolences []CondolenceView
}

type FuneralPage struct {
	Configured bool
	Language   content.Language
	Obituary   *ObituaryView
}

type GalleryPage struct {
	Configured  bool
	Language    content.Language
	Obituary    *ObituaryView
	Photos      []PhotoView
	TotalPhotos int
}

// DebugSnapshot lists identifiers of every stored record.
type DebugSnapshot struct {
	Condolences []DebugCondolence `json:"condolences"`
	Obituaries  []DebugObituary   `json:"obituaries"`
}

type DebugCondolence struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ObituaryID string    `json:"obituaryId"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

type DebugObituary struct {
	ID       string       `json:"id"`
	Name     content.Text `json:"name"`
	IsActive bool         `json:"isActive"`
}

// IMemorialService builds the localized page models.
type IMemorialService interface {
	BuildView(ctx context.Context, lang content.Language) (*MemorialPage, error)
	BuildFuneral(ctx context.Context, lang content.Language) (*FuneralPage, error)
	BuildGallery(ctx context.Context, lang content.Language) (*GalleryPage, error)
	Debug(ctx context.Context) (*DebugSnapshot, error)
}

// GalleryOptions selects where photos are listed from.
type GalleryOptions struct {
	Folder     string
	MaxResults int
}

// MemorialService implements IMemorialService.
type MemorialService struct {
	obituaries  repositories.IObituaryRepository
	condolences repositories.ICondolenceRepository
	photos      gallery.Provider
	i18n        localization.Manager
	gallery     GalleryOptions
}

// NewMemorialService creates the read-path service.
func NewMemorialService(
	obituaries repositories.IObituaryRepository,
	condolences repositories.ICondolenceRepository,
	photos gallery.Provider,
	i18n localization.Manager,
	opts GalleryOptions,
) IMemorialService {
	if photos == nil {
		photos = gallery.NoopProvider{}
	}
	if opts.MaxResults <= 0 || opts.MaxResults > 100 {
		opts.MaxResults = 100
	}
	return &MemorialService{
		obituaries:  obituaries,
		condolences: condolences,
		photos:      photos,
		i18n:        i18n,
		gallery:     opts,
	}
}

// activeObituary returns nil without error when no obituary is active.
func (s *MemorialService) activeObituary(ctx context.Context) (*models.Obituary, error) {
	obituary, err := s.obituaries.FindActive(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		configslog.Log.Error("Active obituary lookup failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrMemorialLoadFailed, err)
	}
	return obituary, nil
}

// LocalizeObituary resolves every translatable field of o for lang.
func LocalizeObituary(o *models.Obituary, lang content.Language) *ObituaryView {
	return &ObituaryView{
		ID:            o.ID,
		Name:          content.Resolve[string](o.Name, lang),
		DateOfBirth:   o.DateOfBirth,
		DateOfPassing: o.DateOfPassing,
		Biography:     content.Resolve[string](o.Biography, lang),
		SurvivedBy:    content.Resolve[[]string](o.SurvivedByList(), lang),
		Tribute:       content.Resolve[string](o.Tribute, lang),
		Funeral: FuneralView{
			Venue:         content.Resolve[string](o.Funeral.Venue, lang),
			Address:       content.Resolve[string](o.Funeral.Address, lang),
			Date:          o.Funeral.Date,
			Time:          o.Funeral.Time,
			GoogleMapsURL: o.Funeral.GoogleMapsURL,
			LiveStreamURL: o.Funeral.LiveStreamURL,
		},
	}
}

func (s *MemorialService) BuildView(ctx context.Context, lang content.Language) (*MemorialPage, error) {
	page := &MemorialPage{Language: lang}

	obituary, err := s.activeObituary(ctx)
	if err != nil || obituary == nil {
		return page, err
	}

	condolences, err := s.condolences.FindApprovedByObituaryID(ctx, obituary.ID)
	if err != nil {
		configslog.Log.Error("Approved condolences lookup failed", zap.String("obituary_id", obituary.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrMemorialLoadFailed, err)
	}

	page.Configured = true
	page.Obituary = LocalizeObituary(obituary, lang)
	page.Condolences = make([]CondolenceView, 0, len(condolences))
	for _, c := range condolences {
		page.Condolences = append(page.Condolences, CondolenceView{
			ID:        c.ID,
			Name:      c.Name,
			Message:   c.Message,
			CreatedAt: c.CreatedAt,
		})
	}
	configslog.SLog.Debugf("Memorial view built: obituary %s, %d condolences", obituary.ID, len(page.Condolences))
	return page, nil
}

func (s *MemorialService) BuildFuneral(ctx context.Context, lang content.Language) (*FuneralPage, error) {
	page := &FuneralPage{Language: lang}

	obituary, err := s.activeObituary(ctx)
	if err != nil || obituary == nil {
		return page, err
	}

	page.Configured = true
	page.Obituary = LocalizeObituary(obituary, lang)
	return page, nil
}

// BuildGallery lists hosted images newest first and attaches the stored caption
// whose URL matches exactly, or a numbered placeholder.
func (s *MemorialService) BuildGallery(ctx context.Context, lang content.Language) (*GalleryPage, error) {
	page := &GalleryPage{Language: lang}

	obituary, err := s.activeObituary(ctx)
	if err != nil || obituary == nil {
		return page, err
	}

	images, err := s.photos.ListImages(ctx, s.gallery.Folder, s.gallery.MaxResults)
	if err != nil {
		configslog.Log.Error("Gallery images could not be listed", zap.String("folder", s.gallery.Folder), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrGalleryUnavailable, err)
	}

	page.Configured = true
	page.Obituary = LocalizeObituary(obituary, lang)
	page.Photos = make([]PhotoView, 0, len(images))
	for i, img := range images {
		position := i + 1
		view := PhotoView{
			PublicID: img.PublicID,
			URL:      img.URL,
			Width:    img.Width,
			Height:   img.Height,
			Position: position,
		}
		if stored, ok := obituary.PhotoByURL(img.URL); ok {
			view.Caption = content.Resolve[string](stored.Caption, lang)
		} else {
			view.Caption = s.placeholderCaption(lang, position)
		}
		page.Photos = append(page.Photos, view)
	}
	page.TotalPhotos = len(page.Photos)
	return page, nil
}

func (s *MemorialService) placeholderCaption(lang content.Language, position int) string {
	if s.i18n == nil {
		return fmt.Sprintf("Photo %d", position)
	}
	return s.i18n.Translate(lang, "photoCaption", map[string]any{"Position": position})
}

func (s *MemorialService) Debug(ctx context.Context) (*DebugSnapshot, error) {
	condolences, err := s.condolences.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	obituaries, err := s.obituaries.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &DebugSnapshot{
		Condolences: make([]DebugCondolence, 0, len(condolences)),
		Obituaries:  make([]DebugObituary, 0, len(obituaries)),
	}
	for _, c := range condolences {
		snapshot.Condolences = append(snapshot.Condolences, DebugCondolence{
			ID:         c.ID,
			Name:       c.Name,
			ObituaryID: c.ObituaryID,
			IsApproved: c.IsApproved,
			CreatedAt:  c.CreatedAt,
		})
	}
	for _, o := range obituaries {
		snapshot.Obituaries = append(snapshot.Obituaries, DebugObituary{ID: o.ID, Name: o.Name, IsActive: o.IsActive})
	}
	return snapshot, nil
}

var _ IMemorialService = (*MemorialService)(nil)
