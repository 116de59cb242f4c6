package services

import (
	"context"
	"sync"

	"ormakal.in/models"
	"ormakal.in/pkg/gallery"

	"github.com/stretchr/testify/mock"
)

type mockObituaryRepo struct {
	mock.Mock
}

func (m *mockObituaryRepo) FindActive(ctx context.Context) (*models.Obituary, error) {
	args := m.Called(ctx)
	obituary, _ := args.Get(0).(*models.Obituary)
	return obituary, args.Error(1)
}

func (m *mockObituaryRepo) FindByID(ctx context.Context, id string) (*models.Obituary, error) {
	args := m.Called(ctx, id)
	obituary, _ := args.Get(0).(*models.Obituary)
	return obituary, args.Error(1)
}

func (m *mockObituaryRepo) FindAll(ctx context.Context) ([]models.Obituary, error) {
	args := m.Called(ctx)
	obituaries, _ := args.Get(0).([]models.Obituary)
	return obituaries, args.Error(1)
}

func (m *mockObituaryRepo) Create(ctx context.Context, obituary *models.Obituary) error {
	return m.Called(ctx, obituary).Error(0)
}

func (m *mockObituaryRepo) Activate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockCondolenceRepo struct {
	mock.Mock
}

func (m *mockCondolenceRepo) Create(ctx context.Context, condolence *models.Condolence) error {
	return m.Called(ctx, condolence).Error(0)
}

func (m *mockCondolenceRepo) FindByID(ctx context.Context, id string) (*models.Condolence, error) {
	args := m.Called(ctx, id)
	condolence, _ := args.Get(0).(*models.Condolence)
	return condolence, args.Error(1)
}

func (m *mockCondolenceRepo) FindApprovedByObituaryID(ctx context.Context, obituaryID string) ([]models.Condolence, error) {
	args := m.Called(ctx, obituaryID)
	condolences, _ := args.Get(0).([]models.Condolence)
	return condolences, args.Error(1)
}

func (m *mockCondolenceRepo) FindAll(ctx context.Context) ([]models.Condolence, error) {
	args := m.Called(ctx)
	condolences, _ := args.Get(0).([]models.Condolence)
	return condolences, args.Error(1)
}

func (m *mockCondolenceRepo) Approve(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Dispatch(obituary *models.Obituary, condolence *models.Condolence) {
	m.Called(obituary, condolence)
}

func (m *mockNotifier) Wait() {}

type mockGallery struct {
	mock.Mock
}

func (m *mockGallery) ListImages(ctx context.Context, folder string, max int) ([]gallery.Image, error) {
	args := m.Called(ctx, folder, max)
	images, _ := args.Get(0).([]gallery.Image)
	return images, args.Error(1)
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records sends. When release is set, each send blocks until it is
// closed or the context expires.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	err     error
	arrived chan string
	release chan struct{}
}

func (f *fakeMailer) SendMail(ctx context.Context, to, subject, body string) error {
	if f.arrived != nil {
		f.arrived <- to
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return f.err
}

func (f *fakeMailer) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.To)
	}
	return out
}
