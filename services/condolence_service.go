package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"ormakal.in/configs/configslog"
	"ormakal.in/models"
	"ormakal.in/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SubmitCondolenceInput is the raw visitor submission.
type SubmitCondolenceInput struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Message string `json:"message" form:"message" validate:"required,min=5"`
	// IsApproved is accepted for compatibility and ignored: submissions are always approved.
	IsApproved *bool `json:"isApproved,omitempty" form:"isApproved" validate:"-"`
}

// Confirmation is returned for an accepted submission.
type Confirmation struct {
	ID         string    `json:"id"`
	ObituaryID string    `json:"obituaryId"`
	CreatedAt  time.Time `json:"createdAt"`
}

var fieldMessages = map[string]string{
	"name":    "Name is required",
	"email":   "Valid email is required",
	"message": "Message must be at least 5 characters",
}

// ICondolenceService handles visitor submissions and moderation.
type ICondolenceService interface {
	Submit(ctx context.Context, input SubmitCondolenceInput) (*Confirmation, error)
	Approve(ctx context.Context, id string) error
}

// CondolenceService implements ICondolenceService.
type CondolenceService struct {
	obituaries  repositories.IObituaryRepository
	condolences repositories.ICondolenceRepository
	notifier    INotificationService
	validate    *validator.Validate
}

// NewCondolenceService wires the workflow to its stores and notifier.
func NewCondolenceService(
	obituaries repositories.IObituaryRepository,
	condolences repositories.ICondolenceRepository,
	notifier INotificationService,
) ICondolenceService {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CondolenceService{
		obituaries:  obituaries,
		condolences: condolences,
		notifier:    notifier,
		validate:    v,
	}
}

func normalizeInput(input SubmitCondolenceInput) SubmitCondolenceInput {
	return SubmitCondolenceInput{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Message: strings.TrimSpace(input.Message),
	}
}

func (s *CondolenceService) validateInput(input SubmitCondolenceInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := newValidationError()
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		verr.add(fe.Field(), msg)
	}
	return verr
}

// Submit validates the input, stores an approved condolence for the active
// obituary and dispatches the notification emails without waiting for them.
func (s *CondolenceService) Submit(ctx context.Context, input SubmitCondolenceInput) (*Confirmation, error) {
	input = normalizeInput(input)
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	obituary, err := s.obituaries.FindActive(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoActiveObituary
		}
		configslog.Log.Error("Active obituary lookup failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCondolencePersistence, err)
	}

	condolence := &models.Condolence{
		ObituaryID: obituary.ID,
		Name:       input.Name,
		Email:      input.Email,
		Message:    input.Message,
		IsApproved: true,
	}
	if err := s.condolences.Create(ctx, condolence); err != nil {
		configslog.Log.Error("Condolence could not be saved",
			zap.String("obituary_id", obituary.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCondolencePersistence, err)
	}
	configslog.Log.Info("Condolence saved",
		zap.String("condolence_id", condolence.ID), zap.String("obituary_id", obituary.ID))

	s.notifier.Dispatch(obituary, condolence)

	return &Confirmation{
		ID:         condolence.ID,
		ObituaryID: condolence.ObituaryID,
		CreatedAt:  condolence.CreatedAt,
	}, nil
}

// Approve marks a condolence approved. Approving twice is not an error.
func (s *CondolenceService) Approve(ctx context.Context, id string) error {
	if err := s.condolences.Approve(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCondolenceNotFound
		}
		configslog.Log.Error("Condolence could not be approved", zap.String("condolence_id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrCondolenceApproval, err)
	}
	configslog.SLog.Infof("Condolence approved: %s", id)
	return nil
}

var _ ICondolenceService = (*CondolenceService)(nil)
