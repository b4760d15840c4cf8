package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterAndLookup(t *testing.T) {
	Register(Registration{
		Info: AdapterInfo{Type: "fake", DisplayName: "Fake", Description: "test only"},
		SchemaReaderFactory: func(ctx context.Context, cfg ConnectionConfig, logger *zap.Logger) (SchemaReader, error) {
			return nil, nil
		},
	})

	assert.True(t, IsRegistered("fake"))
	assert.False(t, IsRegistered("nonexistent"))

	factory := GetSchemaReaderFactory("fake")
	require.NotNil(t, factory)
	assert.Nil(t, GetSchemaReaderFactory("nonexistent"))

	var found bool
	for _, info := range RegisteredAdapters() {
		if info.Type == "fake" {
			found = true
		}
	}
	assert.True(t, found)
}
