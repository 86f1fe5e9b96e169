package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/crudforge/apperr"
)

func TestOpenWithoutURL(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConnection)
	assert.Contains(t, err.Error(), "DATABASE_URL not set")
}

func TestOpenWithMalformedURL(t *testing.T) {
	_, err := Open(context.Background(), "postgres://%zz")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConnection)
}
