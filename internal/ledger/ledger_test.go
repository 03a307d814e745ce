package ledger

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/config"
	"github.com/profescore/web/internal/database"
	"github.com/profescore/web/internal/models"
)

func newSQLiteLedger(t *testing.T) Ledger {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	svc, err := database.New(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return New(svc.GetDB())
}

func exerciseLedger(t *testing.T, l Ledger) {
	ctx := context.Background()

	require.NoError(t, l.RecordVisitor(ctx, "a1b2c3d4e5"))
	require.NoError(t, l.RecordVisitor(ctx, "a1b2c3d4e5"))

	require.NoError(t, l.RecordSubmission(ctx, models.Submission{
		VisitorID:   "a1b2c3d4e5",
		Kind:        models.SubmissionRating,
		FacultyID:   "f1",
		ProfessorID: "p1",
		RatingID:    "r1",
	}, "203.0.113.7-fp123"))
	require.NoError(t, l.RecordSubmission(ctx, models.Submission{
		VisitorID:   "a1b2c3d4e5",
		Kind:        models.SubmissionVote,
		FacultyID:   "f1",
		ProfessorID: "p1",
		RatingID:    "r9",
	}, ""))

	subs, err := l.Submissions(ctx, "a1b2c3d4e5")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, models.SubmissionRating, subs[0].Kind)
	assert.Equal(t, HashFingerprint("203.0.113.7-fp123"), subs[0].FingerprintHash)
	assert.NotContains(t, subs[0].FingerprintHash, "203.0.113.7")
	assert.Empty(t, subs[1].FingerprintHash)

	other, err := l.Submissions(ctx, "zzzzzzzzzz")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGormLedgerSQLite(t *testing.T) {
	exerciseLedger(t, newSQLiteLedger(t))
}

func TestRecordVisitorIsIdempotent(t *testing.T) {
	l := newSQLiteLedger(t).(*gormLedger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.RecordVisitor(ctx, "q1w2e3r4t5"))
	}

	var count int64
	require.NoError(t, l.db.Model(&models.Visitor{}).Where("visitor_id = ?", "q1w2e3r4t5").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestHashFingerprint(t *testing.T) {
	h := HashFingerprint("1.2.3.4-abc")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashFingerprint("1.2.3.4-abc"))
	assert.NotEqual(t, h, HashFingerprint("1.2.3.4-abd"))
}

func TestNop(t *testing.T) {
	var l Ledger = Nop{}
	assert.NoError(t, l.RecordVisitor(context.Background(), "x"))
	subs, err := l.Submissions(context.Background(), "x")
	assert.NoError(t, err)
	assert.Nil(t, subs)
}
