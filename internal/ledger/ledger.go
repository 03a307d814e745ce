// Package ledger keeps a server-side record of issued visitor tokens and of
// the writes proxied for them.
package ledger

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/profescore/web/internal/models"
)

type Ledger interface {
	RecordVisitor(ctx context.Context, visitorID string) error
	RecordSubmission(ctx context.Context, s models.Submission, fingerprint string) error
	Submissions(ctx context.Context, visitorID string) ([]models.Submission, error)
}

type gormLedger struct {
	db *gorm.DB
}

func New(db *gorm.DB) Ledger {
	return &gormLedger{db: db}
}

// RecordVisitor inserts the visitor or refreshes its last-seen time.
func (l *gormLedger) RecordVisitor(ctx context.Context, visitorID string) error {
	v := models.Visitor{VisitorID: visitorID}
	err := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "visitor_id"}},
		DoUpdates: clause.Assignments(map[string]any{"last_seen_at": time.Now().UTC()}),
	}).Create(&v).Error
	if err != nil {
		return fmt.Errorf("error recording visitor: %w", err)
	}
	return nil
}

func (l *gormLedger) RecordSubmission(ctx context.Context, s models.Submission, fingerprint string) error {
	if fingerprint != "" {
		s.FingerprintHash = HashFingerprint(fingerprint)
	}
	if err := l.db.WithContext(ctx).Create(&s).Error; err != nil {
		return fmt.Errorf("error recording %s submission: %w", s.Kind, err)
	}
	return nil
}

func (l *gormLedger) Submissions(ctx context.Context, visitorID string) ([]models.Submission, error) {
	var out []models.Submission
	err := l.db.WithContext(ctx).
		Where("visitor_id = ?", visitorID).
		Order("created_at asc, id asc").
		Find(&out).Error
	return out, err
}

// HashFingerprint returns the hex BLAKE2b-256 digest of the composite.
func HashFingerprint(fingerprint string) string {
	sum := blake2b.Sum256([]byte(fingerprint))
	return hex.EncodeToString(sum[:])
}

// Nop is used when no database is configured.
type Nop struct{}

func (Nop) RecordVisitor(context.Context, string) error { return nil }

func (Nop) RecordSubmission(context.Context, models.Submission, string) error { return nil }

func (Nop) Submissions(context.Context, string) ([]models.Submission, error) { return nil, nil }
