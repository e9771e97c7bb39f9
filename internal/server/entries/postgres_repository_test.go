package entries

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"habitkeeper/internal/common"
	"habitkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func entryColumns() []string {
	return []string{"id", "tracker_id", "type", "bool_value", "num_value", "text_value", "int_value", "recorded_at", "note", "created_at"}
}

func TestSave_SplitsValueOverColumns(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+entries.*ON\s+CONFLICT\s+\(id\).*DO\s+UPDATE\s+SET`

	// a DURATION value lands in int_value, all other value columns stay NULL
	mock.ExpectExec(q).
		WithArgs("entry_1", "tracker_1",
			sql.NullBool{}, sql.NullFloat64{}, sql.NullString{},
			sql.NullInt64{Int64: 510, Valid: true},
			testTime, nil, testTime).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &models.Entry{
		ID:         "entry_1",
		TrackerID:  "tracker_1",
		Value:      models.NewDurationValue(510),
		RecordedAt: testTime,
		CreatedAt:  testTime,
	}
	if err := repo.Save(context.Background(), entry); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSave_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+entries`).
		WillReturnError(errors.New("db down"))

	err := repo.Save(context.Background(), &models.Entry{ID: "entry_1", Value: models.NewBooleanValue(true)})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFindByID_ReconstructsValueFromTrackerType(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(entryColumns()).
		AddRow("entry_1", "tracker_1", "CURRENCY", nil, nil, nil, int64(1299), testTime, "coffee beans", testTime)
	mock.ExpectQuery(`(?s)SELECT\s+e\.id,.*JOIN\s+trackers\s+t\s+ON\s+t\.id\s*=\s*e\.tracker_id.*WHERE\s+e\.id\s*=\s*\$1`).
		WithArgs("entry_1").
		WillReturnRows(rows)

	got, err := repo.FindByID(context.Background(), "entry_1")
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if got.Value.Type() != models.TypeCurrency || got.Value.Cents() != 1299 {
		t.Fatalf("unexpected value: %+v", got.Value)
	}
	if got.Value.DisplayValue() != "€12.99" {
		t.Fatalf("unexpected display: %q", got.Value.DisplayValue())
	}
	if got.Note == nil || *got.Note != "coffee beans" {
		t.Fatalf("unexpected note: %v", got.Note)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+e\.id`).
		WithArgs("entry_missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "entry_missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

// A NULL in the column the tracker's type selects means the row is corrupt
// and must surface as an error, not a zero value.
func TestFindByID_CorruptRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(entryColumns()).
		AddRow("entry_1", "tracker_1", "NUMBER", nil, nil, nil, nil, testTime, nil, testTime)
	mock.ExpectQuery(`SELECT\s+e\.id`).
		WithArgs("entry_1").
		WillReturnRows(rows)

	_, err := repo.FindByID(context.Background(), "entry_1")
	if err == nil || !regexp.MustCompile(`NULL num_value`).MatchString(err.Error()) {
		t.Fatalf("expected corrupt-row error, got %v", err)
	}
}

func TestFindByTrackerID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(entryColumns()).
		AddRow("entry_2", "tracker_1", "BOOLEAN", true, nil, nil, nil, testTime.Add(time.Hour), nil, testTime).
		AddRow("entry_1", "tracker_1", "BOOLEAN", false, nil, nil, nil, testTime, nil, testTime)
	mock.ExpectQuery(`(?s)WHERE\s+e\.tracker_id\s*=\s*\$1\s+ORDER\s+BY\s+e\.recorded_at\s+DESC`).
		WithArgs("tracker_1").
		WillReturnRows(rows)

	got, err := repo.FindByTrackerID(context.Background(), "tracker_1")
	if err != nil {
		t.Fatalf("FindByTrackerID error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "entry_2" || !got[0].Value.Bool() {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestFindByTrackerIDAndDateRange_InclusiveBounds(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	start := testTime.AddDate(0, 0, -7)
	end := testTime

	rows := sqlmock.NewRows(entryColumns()).
		AddRow("entry_1", "tracker_1", "NUMBER", nil, 42.5, nil, nil, testTime, nil, testTime)
	mock.ExpectQuery(`(?s)WHERE\s+e\.tracker_id\s*=\s*\$1\s+AND\s+e\.recorded_at\s*>=\s*\$2\s+AND\s+e\.recorded_at\s*<=\s*\$3`).
		WithArgs("tracker_1", start, end).
		WillReturnRows(rows)

	got, err := repo.FindByTrackerIDAndDateRange(context.Background(), "tracker_1", start, end)
	if err != nil {
		t.Fatalf("FindByTrackerIDAndDateRange error: %v", err)
	}
	if len(got) != 1 || got[0].Value.Number() != 42.5 {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestDelete_Postgres(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+entries\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("entry_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "entry_1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestCountByTrackerID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+COUNT\(\*\)\s+FROM\s+entries\s+WHERE\s+tracker_id\s*=\s*\$1`).
		WithArgs("tracker_1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := repo.CountByTrackerID(context.Background(), "tracker_1")
	if err != nil {
		t.Fatalf("CountByTrackerID error: %v", err)
	}
	if n != 5 {
		t.Fatalf("count = %d, want 5", n)
	}
}
