package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tablePatterns = "error_patterns"
	tableReviews  = "review_items"
	tableSessions = "session_results"
	tableLLM      = "llm_events"

	textSize = 2147483647
)

var (
	// errorPatternsColumns holds the columns for the "error_patterns" table.
	errorPatternsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "token", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "example", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "occurrences", Type: field.TypeInt, Default: 0},
		{Name: "status", Type: field.TypeString},
		{Name: "last_seen", Type: field.TypeString},
		{Name: "version", Type: field.TypeInt, Default: 1},
	}
	errorPatternsTable = &schema.Table{
		Name:       tablePatterns,
		Columns:    errorPatternsColumns,
		PrimaryKey: []*schema.Column{errorPatternsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "errorpattern_user_id_kind_token",
				Unique:  true,
				Columns: []*schema.Column{errorPatternsColumns[1], errorPatternsColumns[2], errorPatternsColumns[3]},
			},
			{
				Name:    "errorpattern_user_id_status",
				Columns: []*schema.Column{errorPatternsColumns[1], errorPatternsColumns[7]},
			},
		},
	}

	// reviewItemsColumns holds the columns for the "review_items" table.
	reviewItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "item", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString, Default: ""},
		{Name: "interval_days", Type: field.TypeInt, Default: 1},
		{Name: "next_review", Type: field.TypeString},
		{Name: "status", Type: field.TypeString},
		{Name: "version", Type: field.TypeInt, Default: 1},
	}
	reviewItemsTable = &schema.Table{
		Name:       tableReviews,
		Columns:    reviewItemsColumns,
		PrimaryKey: []*schema.Column{reviewItemsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "reviewitem_user_id_kind_item",
				Unique:  true,
				Columns: []*schema.Column{reviewItemsColumns[1], reviewItemsColumns[2], reviewItemsColumns[3]},
			},
			{
				Name:    "reviewitem_user_id_status_next_review",
				Columns: []*schema.Column{reviewItemsColumns[1], reviewItemsColumns[7], reviewItemsColumns[6]},
			},
		},
	}

	// sessionResultsColumns holds the columns for the "session_results" table.
	sessionResultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "date", Type: field.TypeString},
		{Name: "total", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "best_streak", Type: field.TypeInt, Default: 0},
		{Name: "details", Type: field.TypeString, Size: textSize, Default: "[]"},
		{Name: "created_at", Type: field.TypeString},
	}
	sessionResultsTable = &schema.Table{
		Name:       tableSessions,
		Columns:    sessionResultsColumns,
		PrimaryKey: []*schema.Column{sessionResultsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "sessionresult_user_id_created_at",
				Columns: []*schema.Column{sessionResultsColumns[1], sessionResultsColumns[7]},
			},
		},
	}

	// llmEventsColumns holds the columns for the "llm_events" table.
	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: textSize, Default: ""},
	}
	llmEventsTable = &schema.Table{
		Name:       tableLLM,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
	}

	tables = []*schema.Table{
		errorPatternsTable,
		reviewItemsTable,
		sessionResultsTable,
		llmEventsTable,
	}
)

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
