package repositories

import (
	"context"
	"testing"
	"time"

	"ormakal.in/database/migrations"
	"ormakal.in/models"
	"ormakal.in/pkg/content"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresRepositorySuite struct {
	suite.Suite
	container   *tcPostgres.PostgresContainer
	db          *gorm.DB
	obituaries  IObituaryRepository
	condolences ICondolenceRepository
}

func TestPostgresRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("ormakal_test"),
		tcPostgres.WithUsername("ormakal"),
		tcPostgres.WithPassword("ormakal"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(migrations.MigrateObituariesTable(db))
	s.Require().NoError(migrations.MigrateCondolencesTable(db))

	s.obituaries = NewObituaryRepository(db)
	s.condolences = NewCondolenceRepository(db)
}

func (s *PostgresRepositorySuite) TearDownSuite() {
	if s.container != nil {
		s.NoError(s.container.Terminate(context.Background()))
	}
}

func (s *PostgresRepositorySuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE condolences, obituaries").Error)
}

func (s *PostgresRepositorySuite) newObituary(name string) *models.Obituary {
	o := &models.Obituary{
		Name:          content.NewText(name, ""),
		DateOfBirth:   time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC),
		DateOfPassing: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		SurvivedBy:    datatypes.NewJSONType(content.List{English: []string{"Gowtham (Husband)"}}),
		Photos: datatypes.JSONSlice[models.Photo]{
			{URL: "https://img/a.jpg", Caption: content.NewText("Wedding day", "വിവാഹ ദിനം")},
		},
		Language: content.English,
	}
	s.Require().NoError(s.obituaries.Create(context.Background(), o))
	return o
}

func (s *PostgresRepositorySuite) TestFindActiveWithoutActiveObituary() {
	s.newObituary("Inactive")
	_, err := s.obituaries.FindActive(context.Background())
	s.ErrorIs(err, ErrNotFound)
}

func (s *PostgresRepositorySuite) TestActivateKeepsSingleActive() {
	ctx := context.Background()
	first := s.newObituary("First")
	second := s.newObituary("Second")

	s.Require().NoError(s.obituaries.Activate(ctx, first.ID))
	s.Require().NoError(s.obituaries.Activate(ctx, second.ID))

	active, err := s.obituaries.FindActive(ctx)
	s.Require().NoError(err)
	s.Equal(second.ID, active.ID)
	s.Equal("Second", active.Name.English)
	s.Equal([]string{"Gowtham (Husband)"}, active.SurvivedByList().English)

	photo, ok := active.PhotoByURL("https://img/a.jpg")
	s.True(ok)
	s.Equal("വിവാഹ ദിനം", photo.Caption.Malayalam)

	var activeCount int64
	s.Require().NoError(s.db.Model(&models.Obituary{}).Where("is_active").Count(&activeCount).Error)
	s.Equal(int64(1), activeCount)

	s.ErrorIs(s.obituaries.Activate(ctx, models.NewID()), ErrNotFound)
}

func (s *PostgresRepositorySuite) TestApprovedCondolencesNewestFirst() {
	ctx := context.Background()
	obituary := s.newObituary("Memorial")
	other := s.newObituary("Other")
	t1 := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	add := func(obituaryID, name string, at time.Time, approved bool) *models.Condolence {
		c := &models.Condolence{
			BaseModel:  models.BaseModel{CreatedAt: at},
			ObituaryID: obituaryID,
			Name:       name,
			Email:      name + "@example.com",
			Message:    "With sympathy",
			IsApproved: approved,
		}
		s.Require().NoError(s.condolences.Create(ctx, c))
		return c
	}

	c1 := add(obituary.ID, "t1", t1, true)
	c3 := add(obituary.ID, "t3", t1.Add(2*time.Hour), true)
	c2 := add(obituary.ID, "t2", t1.Add(time.Hour), true)
	add(obituary.ID, "hidden", t1.Add(3*time.Hour), false)
	add(other.ID, "elsewhere", t1.Add(4*time.Hour), true)

	got, err := s.condolences.FindApprovedByObituaryID(ctx, obituary.ID)
	s.Require().NoError(err)

	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	s.Equal([]string{c3.ID, c2.ID, c1.ID}, ids)
}

func (s *PostgresRepositorySuite) TestApproveIsIdempotent() {
	ctx := context.Background()
	obituary := s.newObituary("Memorial")
	c := &models.Condolence{ObituaryID: obituary.ID, Name: "Jane", Email: "jane@example.com", Message: "With sympathy"}
	s.Require().NoError(s.condolences.Create(ctx, c))

	stored, err := s.condolences.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.False(stored.IsApproved)

	s.Require().NoError(s.condolences.Approve(ctx, c.ID))
	s.Require().NoError(s.condolences.Approve(ctx, c.ID))

	stored, err = s.condolences.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.True(stored.IsApproved)

	s.ErrorIs(s.condolences.Approve(ctx, models.NewID()), ErrNotFound)
	s.ErrorIs(s.condolences.Approve(ctx, "not-a-uuid"), ErrNotFound)
}
