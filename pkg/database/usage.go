package database

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordUsage adds one request to today's usage row for keyID using a
// single upsert (supported by both Postgres and SQLite).
func RecordUsage(db *gorm.DB, keyID uint, matches, clarifications int) error {
	today := time.Now().Format("2006-01-02")

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":        gorm.Expr("request_count + ?", 1),
			"total_matches":        gorm.Expr("total_matches + ?", matches),
			"total_clarifications": gorm.Expr("total_clarifications + ?", clarifications),
		}),
	}).Create(&APIUsage{
		KeyID:               keyID,
		Date:                today,
		RequestCount:        1,
		TotalMatches:        matches,
		TotalClarifications: clarifications,
	}).Error
}

// UsageHistory returns the last 30 days of usage for keyID, newest first
func UsageHistory(db *gorm.DB, keyID uint) ([]APIUsage, error) {
	var usage []APIUsage
	err := db.Where("key_id = ?", keyID).Order("date desc").Limit(30).Find(&usage).Error
	return usage, err
}

// FindOrCreateKey returns the record for key, creating it on first use
func FindOrCreateKey(db *gorm.DB, key, name string, rateLimit int) (*APIKey, error) {
	var apiKey APIKey
	err := db.Where(APIKey{Key: key}).Attrs(APIKey{
		Name:       name,
		KeyPreview: Preview(key),
		RateLimit:  rateLimit,
	}).FirstOrCreate(&apiKey).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	apiKey.LastUsed = &now
	if err := db.Model(&apiKey).Update("last_used", now).Error; err != nil {
		return nil, err
	}
	return &apiKey, nil
}

// Preview masks a key for display, e.g. "stu...9f3a"
func Preview(key string) string {
	if len(key) > 8 {
		return key[:3] + "..." + key[len(key)-4:]
	}
	return "****"
}

// RequestsToday returns how many requests keyID has made today
func RequestsToday(db *gorm.DB, keyID uint) (int, error) {
	var usage APIUsage
	err := db.Where("key_id = ? AND date = ?", keyID, time.Now().Format("2006-01-02")).Limit(1).Find(&usage).Error
	return usage.RequestCount, err
}
