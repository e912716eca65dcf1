package tables

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ssargent/easytables/pkg/codec"
	"github.com/ssargent/easytables/pkg/logging"
	"github.com/ssargent/easytables/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() provider.MapProvider {
	return provider.MapProvider{
		TableBuff:    "100,Bleed,2,4.5,true,3,1,dot,0\n101,Shield,1,10,false,0,0,1,armor,1.5\n",
		TableHero:    arthurLine + "\n",
		TableNPCHero: "7,Merlin,5,1,2,true\n",
		TableSkill:   "2,Cleave,6,1,100,50\n5,Parry,2,0\n",
	}
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	opts = append([]Option{WithLogger(logging.New(&logs, -4, "text"))}, opts...)
	return NewManager(opts...), &logs
}

func TestManager_LoadAllEndToEnd(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Equal(t, Unloaded, m.State())
	assert.True(t, m.LoadedAt().IsZero())

	require.NoError(t, m.LoadAll(context.Background(), fixture()))
	assert.Equal(t, Loaded, m.State())
	assert.False(t, m.LoadedAt().IsZero())

	hero, ok := m.Hero(1)
	require.True(t, ok)
	assert.Equal(t, int32(1), hero.ID)
	assert.Equal(t, "Arthur", hero.Name)
	assert.Equal(t, int32(3), hero.Quality)
	assert.Equal(t, []int32{2, 5}, hero.Skills)
	assert.Equal(t, map[string]int32{"str": 10, "agi": 8}, hero.Attribute)
	assert.Equal(t, Weapon{Name: "ExcaliburSword", Score: 99}, hero.Weapon)
	assert.Equal(t, HeroStateAvailable, hero.State)

	npc, ok := m.NPCHero(7)
	require.True(t, ok)
	assert.True(t, npc.Display)

	skill, ok := m.Skill(2)
	require.True(t, ok)
	assert.Equal(t, map[int32]int32{100: 50}, skill.BuffProbability)

	buff, ok := m.Buff(101)
	require.True(t, ok)
	assert.Equal(t, BuffKindPositive, buff.Kind)
	assert.Equal(t, map[string]float64{"armor": 1.5}, buff.Modifiers)

	assert.Len(t, m.Buffs(), 2)
	assert.Len(t, m.Heroes(), 1)
	assert.Len(t, m.NPCHeroes(), 1)
	skills := m.Skills()
	require.Len(t, skills, 2)
	assert.Equal(t, int32(2), skills[0].ID)
	assert.Equal(t, int32(5), skills[1].ID)
}

func TestManager_AbsentLookups(t *testing.T) {
	m, _ := newTestManager(t)

	// Before load every table is empty.
	_, ok := m.Hero(1)
	assert.False(t, ok)

	require.NoError(t, m.LoadAll(context.Background(), fixture()))

	h, ok := m.Hero(42)
	assert.False(t, ok)
	assert.Nil(t, h)
	_, ok = m.Buff(0)
	assert.False(t, ok)
	_, ok = m.NPCHero(-1)
	assert.False(t, ok)
	_, ok = m.Skill(99)
	assert.False(t, ok)

	rec, found, err := m.Lookup(TableHero, 42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rec)
}

func TestManager_EmptyTableText(t *testing.T) {
	p := fixture()
	p[TableHero] = ""

	m, _ := newTestManager(t)
	require.NoError(t, m.LoadAll(context.Background(), p))

	assert.Empty(t, m.Heroes())
	_, ok := m.Hero(1)
	assert.False(t, ok)
}

func TestManager_MissingTableFailsByDefault(t *testing.T) {
	p := fixture()
	delete(p, TableNPCHero)

	m, _ := newTestManager(t)
	err := m.LoadAll(context.Background(), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrTableUnavailable)
	assert.Contains(t, err.Error(), TableNPCHero)

	// Nothing from the partial load is visible.
	assert.Equal(t, Unloaded, m.State())
	assert.Empty(t, m.Buffs())
	assert.Empty(t, m.Heroes())
}

func TestManager_SkipMissing(t *testing.T) {
	p := fixture()
	delete(p, TableNPCHero)

	m, logs := newTestManager(t, WithSkipMissing(true))
	require.NoError(t, m.LoadAll(context.Background(), p))

	assert.Equal(t, Loaded, m.State())
	assert.Empty(t, m.NPCHeroes())
	assert.Len(t, m.Heroes(), 1)
	assert.Contains(t, logs.String(), "table unavailable")
	assert.Contains(t, logs.String(), "table=NPCHero")

	var npcStats TableStats
	for _, s := range m.Stats() {
		if s.Name == TableNPCHero {
			npcStats = s
		}
	}
	assert.True(t, npcStats.Skipped)
	assert.Zero(t, npcStats.Rows)
}

func TestManager_SkipMissingStillFailsOnOtherErrors(t *testing.T) {
	boom := errors.New("connection reset")
	p := provider.ProviderFunc(func(ctx context.Context, name string) (string, error) {
		if name == TableSkill {
			return "", boom
		}
		return fixture().Fetch(ctx, name)
	})

	m, _ := newTestManager(t, WithSkipMissing(true))
	err := m.LoadAll(context.Background(), p)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Unloaded, m.State())
}

func TestManager_UnknownEnumIsFatal(t *testing.T) {
	p := fixture()
	p[TableHero] = "1,Arthur,3,0,0,Sword,1,9\n"

	m, _ := newTestManager(t, WithSkipMissing(true))
	err := m.LoadAll(context.Background(), p)
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrUnknownEnumValue)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, TableHero, le.Table)
	assert.Equal(t, 1, le.Line)
	assert.Equal(t, Unloaded, m.State())
}

func TestManager_DuplicateIDs(t *testing.T) {
	p := fixture()
	p[TableSkill] = "2,Old,1,0\n2,New,9,0\n"

	m, logs := newTestManager(t)
	require.NoError(t, m.LoadAll(context.Background(), p))

	s, ok := m.Skill(2)
	require.True(t, ok)
	assert.Equal(t, "New", s.Name)
	assert.Contains(t, logs.String(), "duplicate ids")
}

func TestManager_AlreadyLoaded(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.LoadAll(context.Background(), fixture()))

	err := m.LoadAll(context.Background(), fixture())
	assert.ErrorIs(t, err, ErrAlreadyLoaded)
	assert.Equal(t, Loaded, m.State())
}

func TestManager_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, _ := newTestManager(t)
	err := m.LoadAll(ctx, fixture())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Unloaded, m.State())
}

func TestManager_CustomDelimiter(t *testing.T) {
	p := provider.MapProvider{
		TableBuff:    "",
		TableHero:    "1|Arthur|3|0|0|Sword, Long|10|1\n",
		TableNPCHero: "",
		TableSkill:   "",
	}

	m, _ := newTestManager(t, WithDelimiter('|'))
	require.NoError(t, m.LoadAll(context.Background(), p))

	h, ok := m.Hero(1)
	require.True(t, ok)
	assert.Equal(t, "Sword, Long", h.Weapon.Name)

	text, err := m.Text(TableHero)
	require.NoError(t, err)
	assert.Equal(t, "1|Arthur|3|0|0|Sword, Long|10|1\n", text)
}

func TestManager_InvalidDelimiter(t *testing.T) {
	m, _ := newTestManager(t, WithDelimiter(';'))
	err := m.LoadAll(context.Background(), fixture())
	assert.Error(t, err)
	assert.Equal(t, Unloaded, m.State())
}

func TestManager_DynamicAccess(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.LoadAll(context.Background(), fixture()))

	rec, found, err := m.Lookup(TableBuff, 100)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Bleed", rec.(*Buff).Name)

	rows, err := m.Rows(TableSkill)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int32(2), rows[0].Key())

	_, _, err = m.Lookup("Monster", 1)
	assert.ErrorIs(t, err, ErrUnknownTable)
	_, err = m.Rows("Monster")
	assert.ErrorIs(t, err, ErrUnknownTable)
	_, err = m.Text("Monster")
	assert.ErrorIs(t, err, ErrUnknownTable)

	stats := m.Stats()
	require.Len(t, stats, len(TableNames()))
	assert.Equal(t, TableStats{Name: TableBuff, Rows: 2}, stats[0])
	assert.Equal(t, TableStats{Name: TableHero, Rows: 1}, stats[1])
}

func TestManager_ConcurrentReadsAfterLoad(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.LoadAll(context.Background(), fixture()))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := m.Hero(1); !ok {
					t.Error("hero 1 missing")
					return
				}
				_ = m.Stats()
			}
		}()
	}
	wg.Wait()
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, []string{"Buff", "Hero", "NPCHero", "Skill"}, TableNames())
	assert.Equal(t, "loaded", Loaded.String())
	assert.Equal(t, "unloaded", Unloaded.String())
}
