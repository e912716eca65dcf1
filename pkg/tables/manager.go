package tables

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ssargent/easytables/pkg/codec"
	"github.com/ssargent/easytables/pkg/logging"
	"github.com/ssargent/easytables/pkg/provider"
)

// Table names, in load order.
const (
	TableBuff    = "Buff"
	TableHero    = "Hero"
	TableNPCHero = "NPCHero"
	TableSkill   = "Skill"
)

// TableNames returns every known table name in load order.
func TableNames() []string {
	return []string{TableBuff, TableHero, TableNPCHero, TableSkill}
}

// State is the lifecycle state of a Manager.
type State int

const (
	Unloaded State = iota
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "unloaded"
}

// TableStats describes one loaded table.
type TableStats struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Skipped bool   `json:"skipped,omitempty"`
}

type options struct {
	delim       byte
	skipMissing bool
	logger      *slog.Logger
}

// Option configures a Manager.
type Option func(*options)

// WithDelimiter sets the field delimiter used to decode every table.
func WithDelimiter(d byte) Option {
	return func(o *options) { o.delim = d }
}

// WithSkipMissing makes LoadAll leave a table empty, instead of failing,
// when the provider reports it as unavailable. Any other provider error and
// every decode error still fail the load.
func WithSkipMissing(skip bool) Option {
	return func(o *options) { o.skipMissing = skip }
}

// WithLogger sets the logger used during loading.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// tableSet is one complete generation of tables. LoadAll fills a fresh set
// and only publishes it when every table loaded.
type tableSet struct {
	buffs     *Table[*Buff]
	heroes    *Table[*Hero]
	npcHeroes *Table[*NPCHero]
	skills    *Table[*Skill]
	byName    map[string]anyTable
	skipped   map[string]bool
}

func newTableSet() *tableSet {
	s := &tableSet{
		buffs:     NewTable(TableBuff, DecodeBuff),
		heroes:    NewTable(TableHero, DecodeHero),
		npcHeroes: NewTable(TableNPCHero, DecodeNPCHero),
		skills:    NewTable(TableSkill, DecodeSkill),
		skipped:   make(map[string]bool),
	}
	s.byName = map[string]anyTable{
		TableBuff:    s.buffs,
		TableHero:    s.heroes,
		TableNPCHero: s.npcHeroes,
		TableSkill:   s.skills,
	}
	return s
}

// Manager owns one table per record type. It starts Unloaded with empty
// tables and becomes Loaded after one successful LoadAll. Records handed
// out by a Manager are shared and must be treated as read-only.
type Manager struct {
	mu       sync.RWMutex
	opts     options
	state    State
	loadedAt time.Time
	set      *tableSet
}

// NewManager creates an Unloaded manager.
func NewManager(opts ...Option) *Manager {
	o := options{delim: codec.DefaultDelimiter}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.WithComponent("tables")
	}
	return &Manager{opts: o, set: newTableSet()}
}

// LoadAll fetches and decodes every table from p. On any error the manager
// stays Unloaded and its tables stay empty.
func (m *Manager) LoadAll(ctx context.Context, p provider.Provider) error {
	if err := codec.CheckDelimiter(m.opts.delim); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Loaded {
		return ErrAlreadyLoaded
	}

	start := time.Now()
	next := newTableSet()
	for _, name := range TableNames() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("load aborted before table %s: %w", name, err)
		}

		log := logging.WithTable(m.opts.logger, name)
		text, err := p.Fetch(ctx, name)
		if err != nil {
			if m.opts.skipMissing && errors.Is(err, provider.ErrTableUnavailable) {
				log.Warn("table unavailable, leaving it empty", "error", err)
				next.skipped[name] = true
				continue
			}
			return fmt.Errorf("failed to fetch table %s: %w", name, err)
		}

		t := next.byName[name]
		replaced, err := t.Load(text, m.opts.delim)
		if err != nil {
			return err
		}
		if replaced > 0 {
			log.Warn("duplicate ids replaced earlier rows", "replaced", replaced)
		}
		log.Debug("table loaded", "rows", t.Len())
	}

	m.set = next
	m.state = Loaded
	m.loadedAt = time.Now()
	m.opts.logger.Info("tables loaded",
		"tables", len(next.byName)-len(next.skipped),
		"skipped", len(next.skipped),
		"duration", time.Since(start))
	return nil
}

// State returns the lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// LoadedAt returns when the tables were loaded, or the zero time.
func (m *Manager) LoadedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadedAt
}

// Stats returns row counts for every table in load order.
func (m *Manager) Stats() []TableStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make([]TableStats, 0, len(m.set.byName))
	for _, name := range TableNames() {
		stats = append(stats, TableStats{
			Name:    name,
			Rows:    m.set.byName[name].Len(),
			Skipped: m.set.skipped[name],
		})
	}
	return stats
}

// Lookup returns a record from the named table. The bool is false when no
// record has that id; the error is non-nil only for an unknown table.
func (m *Manager) Lookup(table string, id int32) (Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.set.byName[table]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	r, found := t.lookup(id)
	return r, found, nil
}

// Rows returns every record of the named table ordered by id.
func (m *Manager) Rows(table string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.set.byName[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return t.records(), nil
}

// Text re-encodes the named table in its line format.
func (m *Manager) Text(table string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.set.byName[table]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return t.Text(m.opts.delim), nil
}

// Buff returns the buff with the given id.
func (m *Manager) Buff(id int32) (*Buff, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.buffs.Get(id)
}

// Buffs returns every buff ordered by id.
func (m *Manager) Buffs() []*Buff {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.buffs.All()
}

// Hero returns the hero with the given id.
func (m *Manager) Hero(id int32) (*Hero, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.heroes.Get(id)
}

// Heroes returns every hero ordered by id.
func (m *Manager) Heroes() []*Hero {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.heroes.All()
}

// NPCHero returns the NPC hero with the given id.
func (m *Manager) NPCHero(id int32) (*NPCHero, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.npcHeroes.Get(id)
}

// NPCHeroes returns every NPC hero ordered by id.
func (m *Manager) NPCHeroes() []*NPCHero {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.npcHeroes.All()
}

// Skill returns the skill with the given id.
func (m *Manager) Skill(id int32) (*Skill, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.skills.Get(id)
}

// Skills returns every skill ordered by id.
func (m *Manager) Skills() []*Skill {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.set.skills.All()
}
