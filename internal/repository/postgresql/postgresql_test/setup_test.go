package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/geoshift-backend-go/migrations"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *database.DB
	testDBErr   error
	testDBSetup sync.Once
)

// openTestDB connects to TEST_DATABASE_URL and applies the migrations once
// per test binary. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBSetup.Do(func() {
		if err := database.Migrate(dsn, migrations.FS); err != nil {
			testDBErr = err
			return
		}
		testDB, testDBErr = database.NewPostgreSQLDB(context.Background(), dsn)
	})
	require.NoError(t, testDBErr)

	require.NoError(t, truncateAllTables(context.Background(), testDB))
	return testDB
}

// truncateAllTables removes all rows except the seeded plans.
func truncateAllTables(ctx context.Context, db *database.DB) error {
	tables := []string{
		"notifications",
		"leave_requests",
		"attendance_records",
		"companies",
		"users",
	}

	for _, table := range tables {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}
