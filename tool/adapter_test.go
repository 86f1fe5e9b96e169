package tool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/crudforge/schema"
	"github.com/ridoystarlord/crudforge/writer"
)

var columnNames = []string{
	"column_name", "data_type", "is_nullable", "has_default",
	"character_maximum_length", "numeric_precision", "numeric_scale", "is_primary",
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)
}

func newTestAdapter(t *testing.T, connect Connector) (*Adapter, string) {
	t.Helper()
	dir := t.TempDir()
	settings := Settings{
		Options: schema.Options{BasePackage: "com.acme.jobs"},
		Writer: writer.Writer{
			SourceRoot:    filepath.Join(dir, "java"),
			ResourcesRoot: filepath.Join(dir, "resources"),
		},
	}
	return New(settings, connect, WithClock(fixedClock)), dir
}

func mockConnector(t *testing.T) (Connector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return func(context.Context) (DB, error) { return db, nil }, mock
}

func failingConnector(context.Context) (DB, error) {
	return nil, errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
}

func jobPostArgs() map[string]any {
	return map[string]any{
		"entityName": "jobPost",
		"fields": []any{
			map[string]any{"name": "title", "type": "string", "required": true, "maxLength": float64(100)},
			map[string]any{"name": "salaryMin", "type": "decimal"},
		},
	}
}

func TestUnknownTool(t *testing.T) {
	a, _ := newTestAdapter(t, nil)

	result := a.Call(context.Background(), "drop_database", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "Error: ")
	assert.Contains(t, result.Text(), "unknown tool: drop_database")
}

func TestToolsMatchHandlers(t *testing.T) {
	a, _ := newTestAdapter(t, nil)

	tools := a.Tools()
	require.Len(t, tools, len(a.handlers))
	for _, d := range tools {
		_, ok := a.handlers[d.Name]
		assert.True(t, ok, d.Name)
		assert.Equal(t, "object", d.InputSchema["type"])
	}
}

func TestGenerateFullCRUD(t *testing.T) {
	a, dir := newTestAdapter(t, nil)

	result := a.Call(context.Background(), "generate_full_crud", jobPostArgs())
	require.False(t, result.IsError, result.Text())
	assert.Contains(t, result.Text(), "Generated 4 file(s) for JobPost")

	for _, rel := range []string{
		"model/JobPost.java",
		"repository/JobPostRepository.java",
		"service/JobPostService.java",
		"controller/JobPostController.java",
	} {
		assert.FileExists(t, filepath.Join(dir, "java", rel))
	}

	controller, err := os.ReadFile(filepath.Join(dir, "java", "controller", "JobPostController.java"))
	require.NoError(t, err)
	assert.Contains(t, string(controller), "package com.acme.jobs.controller;")
	assert.Contains(t, string(controller), `"/api/v1/job-post"`)
}

func TestGenerateDTOsPlacesValidationOnRequest(t *testing.T) {
	a, dir := newTestAdapter(t, nil)

	result := a.Call(context.Background(), "generate_dtos", jobPostArgs())
	require.False(t, result.IsError, result.Text())

	request, err := os.ReadFile(filepath.Join(dir, "java", "dto", "JobPostRequestDTO.java"))
	require.NoError(t, err)
	assert.Contains(t, string(request), "@NotNull")
	assert.Contains(t, string(request), "max = 100")

	response, err := os.ReadFile(filepath.Join(dir, "java", "dto", "JobPostResponseDTO.java"))
	require.NoError(t, err)
	assert.NotContains(t, string(response), "@NotNull")
	assert.Contains(t, string(response), "createdAt")
}

func TestGenerationErrorsBecomeResults(t *testing.T) {
	a, dir := newTestAdapter(t, nil)

	result := a.Call(context.Background(), "generate_entity", map[string]any{"fields": []any{}})
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "entityName is required")
	assert.NoDirExists(t, filepath.Join(dir, "java"))

	result = a.Call(context.Background(), "generate_entity", map[string]any{"entityName": "Widget", "fields": "nope"})
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "invalid arguments")
}

func TestTypeFallbackWarning(t *testing.T) {
	a, _ := newTestAdapter(t, nil)

	result := a.Call(context.Background(), "generate_entity", map[string]any{
		"entityName": "Invoice",
		"fields":     []any{map[string]any{"name": "amount", "type": "money"}},
	})
	require.False(t, result.IsError, result.Text())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "money")
	assert.Contains(t, result.Text(), "Warnings:")
}

func TestSetupInfrastructure(t *testing.T) {
	a, dir := newTestAdapter(t, nil)

	result := a.Call(context.Background(), "setup_api_infrastructure", nil)
	require.False(t, result.IsError, result.Text())
	assert.FileExists(t, filepath.Join(dir, "java", "config", "OpenAPIConfig.java"))
	assert.FileExists(t, filepath.Join(dir, "java", "exception", "GlobalExceptionHandler.java"))
}

func TestListTables(t *testing.T) {
	connect, mock := mockConnector(t)
	a, _ := newTestAdapter(t, connect)

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name", "table_type"}).
			AddRow("job_applications", "BASE TABLE"))
	mock.ExpectClose()

	result := a.Call(context.Background(), "list_tables", nil)
	require.False(t, result.IsError, result.Text())
	assert.Equal(t, "Tables in schema public:\n- job_applications (BASE TABLE)\n", result.Text())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDescribeTable(t *testing.T) {
	connect, mock := mockConnector(t)
	a, _ := newTestAdapter(t, connect)

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("public", "job_applications").
		WillReturnRows(sqlmock.NewRows(columnNames).
			AddRow("id", "bigint", false, true, nil, int64(64), int64(0), true).
			AddRow("status", "character varying", false, false, int64(20), nil, nil, false).
			AddRow("notes", "text", true, false, nil, nil, nil, false))
	mock.ExpectClose()

	result := a.Call(context.Background(), "describe_table", map[string]any{"tableName": "job_applications"})
	require.False(t, result.IsError, result.Text())
	assert.Contains(t, result.Text(), "- id: bigint NOT NULL PRIMARY KEY DEFAULT\n")
	assert.Contains(t, result.Text(), "- status: character varying(20) NOT NULL\n")
	assert.Contains(t, result.Text(), "- notes: text NULL\n")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDescribeTableRequiresName(t *testing.T) {
	called := false
	a, _ := newTestAdapter(t, func(context.Context) (DB, error) {
		called = true
		return nil, errors.New("unreachable")
	})

	result := a.Call(context.Background(), "describe_table", map[string]any{})
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "tableName is required")
	assert.False(t, called)
}

func TestGenerateCRUDFromTable(t *testing.T) {
	connect, mock := mockConnector(t)
	a, dir := newTestAdapter(t, connect)

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("public", "job_applications").
		WillReturnRows(sqlmock.NewRows(columnNames).
			AddRow("id", "bigint", false, true, nil, int64(64), int64(0), true).
			AddRow("status", "character varying", false, false, int64(20), nil, nil, false).
			AddRow("created_at", "timestamp without time zone", false, true, nil, nil, nil, false))
	mock.ExpectClose()

	result := a.Call(context.Background(), "generate_crud_from_table", map[string]any{"tableName": "job_applications"})
	require.False(t, result.IsError, result.Text())
	assert.Contains(t, result.Text(), "Generated 6 file(s) for JobApplications")

	entity, err := os.ReadFile(filepath.Join(dir, "java", "model", "JobApplications.java"))
	require.NoError(t, err)
	assert.Contains(t, string(entity), `@Table(name = "job_applications")`)
	assert.Contains(t, string(entity), "private String status;")
	assert.FileExists(t, filepath.Join(dir, "java", "controller", "JobApplicationsController.java"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnknownTableIsAnError(t *testing.T) {
	connect, mock := mockConnector(t)
	a, _ := newTestAdapter(t, connect)

	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("public", "ghosts").
		WillReturnRows(sqlmock.NewRows(columnNames))
	mock.ExpectClose()

	result := a.Call(context.Background(), "generate_entity_from_table", map[string]any{"tableName": "ghosts"})
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionFailure(t *testing.T) {
	a, _ := newTestAdapter(t, failingConnector)

	result := a.Call(context.Background(), "list_tables", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "ConnectionError")
	assert.Contains(t, result.Text(), "connection refused")
}

func TestNoConnector(t *testing.T) {
	a, _ := newTestAdapter(t, nil)

	result := a.Call(context.Background(), "analyze_performance", nil)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "no database configured")
}

func TestCreateMigrationFromSQL(t *testing.T) {
	a, dir := newTestAdapter(t, nil)

	result := a.Call(context.Background(), "create_migration", map[string]any{
		"description": "Add Resume Column",
		"sql":         "ALTER TABLE job_applications ADD COLUMN resume TEXT;",
	})
	require.False(t, result.IsError, result.Text())

	path := filepath.Join(dir, "resources", "db", "migration", "V20240105103000__add_resume_column.sql")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- Migration: Add Resume Column")
	assert.Contains(t, string(data), "ADD COLUMN resume TEXT;")
}

func TestCreateMigrationFromEntity(t *testing.T) {
	a, dir := newTestAdapter(t, nil)

	args := jobPostArgs()
	args["description"] = "create job post"
	result := a.Call(context.Background(), "create_migration", args)
	require.False(t, result.IsError, result.Text())

	data, err := os.ReadFile(filepath.Join(dir, "resources", "db", "migration", "V20240105103000__create_job_post.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `CREATE TABLE "job_post"`)
	assert.Contains(t, string(data), `"title" VARCHAR(100) NOT NULL`)
}

func TestCreateMigrationRejectsBadInput(t *testing.T) {
	a, _ := newTestAdapter(t, nil)

	tests := []struct {
		name string
		args map[string]any
		msg  string
	}{
		{"no description", map[string]any{"sql": "SELECT 1;"}, "description is required"},
		{"no body", map[string]any{"description": "empty"}, "either sql or entityName"},
		{"bad description", map[string]any{"description": "add-column!", "sql": "SELECT 1;"}, "must contain only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.Call(context.Background(), "create_migration", tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, result.Text(), tt.msg)
		})
	}
}

func TestAnalyzePerformanceWithoutExtension(t *testing.T) {
	connect, mock := mockConnector(t)
	a, _ := newTestAdapter(t, connect)

	mock.ExpectQuery("FROM pg_stat_statements").
		WillReturnError(errors.New(`relation "pg_stat_statements" does not exist`))
	mock.ExpectClose()

	result := a.Call(context.Background(), "analyze_performance", nil)
	require.False(t, result.IsError, result.Text())
	assert.Contains(t, result.Text(), "Slow queries:\n- none\n")
	assert.Contains(t, result.Text(), "Note: slow query statistics not available")
	assert.Contains(t, result.Text(), `relation "pg_stat_statements" does not exist`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetSettings(t *testing.T) {
	a, _ := newTestAdapter(t, nil)

	s := a.Settings()
	s.DBSchema = "crm"
	a.SetSettings(s)
	assert.Equal(t, "crm", a.Settings().DBSchema)
}
