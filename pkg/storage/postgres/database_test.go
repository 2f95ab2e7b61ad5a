package postgres_test

import (
	"os"
	"testing"

	"optionflow/config"
	"optionflow/pkg/storage/postgres"

	"github.com/stretchr/testify/require"
)

// go test -v --run TestCreateDatabase
func TestCreateDatabase(t *testing.T) {
	if os.Getenv("OPTIONFLOW_TEST_PG_HOST") == "" {
		t.Skip("set OPTIONFLOW_TEST_PG_HOST to run CreateDatabase")
	}

	cfg := config.PostgresConfig{
		Host:     os.Getenv("OPTIONFLOW_TEST_PG_HOST"),
		Port:     5432,
		User:     "postgres",
		Password: os.Getenv("OPTIONFLOW_TEST_PG_PASSWORD"),
		DBName:   "optionflow_test",
		SSLMode:  "disable",
	}

	require.NoError(t, postgres.CreateDatabase(cfg, "dev"))
	// second call sees the database and is a no-op
	require.NoError(t, postgres.CreateDatabase(cfg, "dev"))
}
