// Package tool exposes the generation pipeline as named tools. The Adapter
// is the only place where pipeline errors are turned into results; callers
// never see an error value.
package tool

import (
	"context"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"

	"github.com/ridoystarlord/crudforge/apperr"
	"github.com/ridoystarlord/crudforge/emitter"
	"github.com/ridoystarlord/crudforge/generator"
	"github.com/ridoystarlord/crudforge/introspect"
	"github.com/ridoystarlord/crudforge/logs"
	"github.com/ridoystarlord/crudforge/schema"
	"github.com/ridoystarlord/crudforge/writer"
)

// DB is a database handle opened for a single tool call.
type DB interface {
	introspect.Querier
	Close() error
}

// Connector opens the database for tools that read the catalog.
type Connector func(ctx context.Context) (DB, error)

// Settings are the per-process inputs every call reads.
type Settings struct {
	Options  schema.Options
	DBSchema string
	Writer   writer.Writer
}

type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is what a tool call returns to the transport.
type Result struct {
	Content  []Content `json:"content"`
	IsError  bool      `json:"isError,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
}

// Text returns the concatenated text content.
func (r *Result) Text() string {
	var s string
	for _, c := range r.Content {
		s += c.Text
	}
	return s
}

func textResult(text string, warnings []string) *Result {
	return &Result{Content: []Content{{Type: "text", Text: text}}, Warnings: warnings}
}

func errorResult(err error) *Result {
	return &Result{Content: []Content{{Type: "text", Text: "Error: " + err.Error()}}, IsError: true}
}

type handler func(ctx context.Context, s Settings, args map[string]any) (*Result, error)

type Option func(*Adapter)

// WithClock replaces time.Now for migration timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// WithBackend replaces the Java backend.
func WithBackend(b *emitter.Backend) Option {
	return func(a *Adapter) { a.backend = b }
}

type Adapter struct {
	mu       sync.RWMutex
	settings Settings

	connect  Connector
	now      func() time.Time
	backend  *emitter.Backend
	handlers map[string]handler
}

// New returns an adapter with every tool registered.
func New(settings Settings, connect Connector, opts ...Option) *Adapter {
	a := &Adapter{
		settings: settings,
		connect:  connect,
		now:      time.Now,
		backend:  emitter.Java,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.handlers = map[string]handler{
		"generate_entity":              a.generateFamily(generator.EntityOnly),
		"generate_full_crud":           a.generateFamily(generator.FullCRUD),
		"generate_dtos":                a.generateFamily(generator.DTOs),
		"generate_enhanced_controller": a.generateFamily(generator.ControllerOnly),
		"setup_api_infrastructure":     a.setupInfrastructure,
		"list_tables":                  a.listTables,
		"describe_table":               a.describeTable,
		"generate_entity_from_table":   a.generateFromTable(generator.EntityOnly),
		"generate_crud_from_table":     a.generateFromTable(generator.TableCRUD),
		"create_migration":             a.createMigration,
		"analyze_performance":          a.analyzePerformance,
	}
	return a
}

// SetSettings swaps the settings used by subsequent calls.
func (a *Adapter) SetSettings(s Settings) {
	a.mu.Lock()
	a.settings = s
	a.mu.Unlock()
}

func (a *Adapter) Settings() Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// Call runs the named tool. Every failure, including an unknown name, is
// reported through Result.IsError.
func (a *Adapter) Call(ctx context.Context, name string, args map[string]any) *Result {
	h, ok := a.handlers[name]
	if !ok {
		logs.Warn("unknown tool", zap.String("tool", name))
		return errorResult(apperr.UnknownTool(name))
	}
	if args == nil {
		args = map[string]any{}
	}

	start := time.Now()
	result, err := h(ctx, a.Settings(), args)
	if err != nil {
		logs.Error("tool failed",
			zap.String("tool", name),
			zap.Stringer("kind", apperr.KindOf(err)),
			zap.Error(err),
		)
		return errorResult(err)
	}

	logs.Info("tool done",
		zap.String("tool", name),
		zap.Duration("took", time.Since(start)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result
}

// open connects and wraps connection failures.
func (a *Adapter) open(ctx context.Context) (DB, error) {
	if a.connect == nil {
		return nil, apperr.Connection(errNoConnector)
	}
	db, err := a.connect(ctx)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConnection {
			return nil, err
		}
		return nil, apperr.Connection(err)
	}
	return db, nil
}

// decode copies loosely typed JSON arguments into out.
func decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return apperr.Validation("invalid arguments: %v", err)
	}
	return nil
}
