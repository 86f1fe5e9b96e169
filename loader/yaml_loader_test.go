package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entitiesYAML = `
entities:
  - entityName: JobPost
    fields:
      - name: title
        type: string
        required: true
        maxLength: 100
      - name: salaryMin
        type: decimal
  - entityName: Candidate
    fields:
      - { name: email, type: string, isEmail: true, nullable: false }
`

func TestLoadEntitiesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(entitiesYAML), 0o644))

	entities, err := LoadEntitiesFromYAML(path)
	require.NoError(t, err)
	require.Len(t, entities, 2)

	job := entities[0]
	assert.Equal(t, "JobPost", job.EntityName)
	require.Len(t, job.Fields, 2)
	assert.Equal(t, "title", job.Fields[0].Name)
	require.NotNil(t, job.Fields[0].Required)
	assert.True(t, *job.Fields[0].Required)
	assert.Equal(t, 100, *job.Fields[0].MaxLength)
	assert.Nil(t, job.Fields[1].Required)

	email := entities[1].Fields[0]
	assert.True(t, email.IsEmail)
	require.NotNil(t, email.Nullable)
	assert.False(t, *email.Nullable)
}

func TestParseEntitiesRejectsUnknownKeys(t *testing.T) {
	_, err := ParseEntities([]byte("entities:\n  - entityName: A\n    fields:\n      - { name: a, type: string, requried: true }\n"))
	assert.Error(t, err)
}

func TestParseEntitiesEmpty(t *testing.T) {
	_, err := ParseEntities([]byte(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entities defined")
}

func TestLoadEntitiesMissingFile(t *testing.T) {
	_, err := LoadEntitiesFromYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading entities file")
}
