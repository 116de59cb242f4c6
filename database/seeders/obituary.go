package seeders

import (
	"context"
	"time"

	"ormakal.in/configs/configslog"
	"ormakal.in/models"
	"ormakal.in/pkg/content"
	"ormakal.in/repositories"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// SampleObituary is the demo memorial used for local setups.
func SampleObituary() *models.Obituary {
	return &models.Obituary{
		Name:          content.NewText("Athira Gowtham", "ആതിര ഗൗതം"),
		DateOfBirth:   time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC),
		DateOfPassing: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Biography: content.NewText(
			"A loving wife, mother, and friend to many. Athira lived her life with grace, kindness, and an unwavering commitment to her family and community. She touched the hearts of everyone she met with her warm smile and generous spirit.",
			"",
		),
		SurvivedBy: datatypes.NewJSONType(content.List{
			English: []string{
				"Gowtham (Husband)",
				"Rahul (Son)",
				"Priya (Daughter)",
				"Ramesh (Father)",
				"Lakshmi (Mother)",
			},
		}),
		Tribute: content.NewText(
			"Athira's legacy lives on in the countless lives she touched. Her love, wisdom, and compassion will be remembered forever. She was a beacon of light in our lives and will be deeply missed.",
			"",
		),
		Funeral: models.Funeral{
			Venue:         content.NewText("St. Mary's Church", "സെന്റ് മേരീസ് പള്ളി"),
			Address:       content.NewText("123 Church Street, Kochi, Kerala, India", ""),
			Date:          time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
			Time:          "10:00 AM",
			GoogleMapsURL: "https://maps.google.com/?q=St+Mary's+Church+Kochi",
			LiveStreamURL: "https://youtube.com/watch?v=example",
		},
		Photos:   datatypes.JSONSlice[models.Photo]{},
		Language: content.English,
	}
}

// SeedSampleObituary creates and activates the sample obituary when the store is empty.
func SeedSampleObituary(ctx context.Context, repo repositories.IObituaryRepository) error {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		configslog.Log.Error("Obituaries could not be listed", zap.Error(err))
		return err
	}
	if len(existing) > 0 {
		configslog.SLog.Infof("%d obituaries already exist, skipping sample data.", len(existing))
		return nil
	}

	obituary := SampleObituary()
	if err := repo.Create(ctx, obituary); err != nil {
		configslog.Log.Error("Sample obituary could not be created", zap.Error(err))
		return err
	}
	if err := repo.Activate(ctx, obituary.ID); err != nil {
		configslog.Log.Error("Sample obituary could not be activated", zap.String("id", obituary.ID), zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sample obituary '%s' created and activated (ID: %s).", obituary.Name.English, obituary.ID)
	return nil
}
