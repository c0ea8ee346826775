package main

import (
	"encoding/csv"
	"keciapp/config"
	"keciapp/database"
	"keciapp/models"
	"log"
	"os"
	"strconv"
	"strings"
)

// Seeds the series/episode catalog from Catalog.csv. Expected columns:
// series_title, series_category, episode_title, audio_url, duration_seconds,
// sequence_number. Rows sharing a series title land in the same series.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("Catalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV file: %v", err)
	}

	db := database.Database.Db
	seriesByTitle := make(map[string]uint)
	inserted := 0

	for i, record := range records {
		if i == 0 {
			continue // header
		}
		if len(record) < 6 {
			log.Printf("Skipping malformed row %d", i+1)
			continue
		}

		seriesTitle := strings.TrimSpace(record[0])
		seriesID, ok := seriesByTitle[seriesTitle]
		if !ok {
			var series models.Series
			err := db.Where("title = ? AND is_deleted = ?", seriesTitle, false).First(&series).Error
			if err != nil {
				series = models.Series{
					Title:    seriesTitle,
					Category: strings.TrimSpace(record[1]),
					IsActive: true,
				}
				if err := db.Create(&series).Error; err != nil {
					log.Printf("Failed to create series %q: %v", seriesTitle, err)
					continue
				}
			}
			seriesID = series.ID
			seriesByTitle[seriesTitle] = seriesID
		}

		duration, err := strconv.Atoi(strings.TrimSpace(record[4]))
		if err != nil {
			log.Printf("Skipping row %d: bad duration %q", i+1, record[4])
			continue
		}
		sequence, err := strconv.Atoi(strings.TrimSpace(record[5]))
		if err != nil || sequence < 1 {
			log.Printf("Skipping row %d: bad sequence number %q", i+1, record[5])
			continue
		}

		episode := models.Episode{
			SeriesID:        seriesID,
			Title:           strings.TrimSpace(record[2]),
			AudioURL:        strings.TrimSpace(record[3]),
			DurationSeconds: duration,
			SequenceNumber:  sequence,
		}
		if err := db.Create(&episode).Error; err != nil {
			log.Printf("Failed to create episode %q: %v", episode.Title, err)
			continue
		}
		inserted++
	}

	log.Printf("Catalog seed complete: %d episodes across %d series", inserted, len(seriesByTitle))
}
