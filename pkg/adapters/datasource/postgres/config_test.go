package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dataagent-stack/dataagent-engine/pkg/adapters/datasource"
)

func TestBuildConnectionString(t *testing.T) {
	cfg := datasource.ConnectionConfig{
		Host:     "localhost",
		Port:     5433,
		User:     "reader",
		Password: "s3cret",
		Database: "shop",
		SSLMode:  "disable",
	}

	connStr := buildConnectionString(cfg)
	assert.Equal(t, "host=localhost port=5433 user=reader password=s3cret dbname=shop sslmode=disable", connStr)
}

func TestBuildConnectionStringDefaults(t *testing.T) {
	cfg := datasource.ConnectionConfig{
		Host:     "localhost",
		User:     "reader",
		Password: "pw",
		Database: "shop",
	}

	connStr := buildConnectionString(cfg)
	assert.Contains(t, connStr, "port=5432")
	assert.Contains(t, connStr, "sslmode=require")
}
