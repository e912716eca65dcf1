package tables

import (
	"fmt"

	"github.com/ssargent/easytables/pkg/codec"
)

// HeroState is the unlock state of a hero.
type HeroState int32

const (
	HeroStateLocked    HeroState = 1
	HeroStateAvailable HeroState = 2
)

// ParseHeroState maps an integer code to a HeroState.
func ParseHeroState(code int32) (HeroState, error) {
	switch s := HeroState(code); s {
	case HeroStateLocked, HeroStateAvailable:
		return s, nil
	}
	return 0, &codec.UnknownEnumValueError{Enum: "Hero.State", Code: code}
}

func (s HeroState) String() string {
	switch s {
	case HeroStateLocked:
		return "Locked"
	case HeroStateAvailable:
		return "Available"
	}
	return fmt.Sprintf("HeroState(%d)", int32(s))
}

func (s HeroState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *HeroState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Locked":
		*s = HeroStateLocked
	case "Available":
		*s = HeroStateAvailable
	default:
		return fmt.Errorf("unknown hero state %q", text)
	}
	return nil
}

// Weapon is the signature weapon carried by a hero.
type Weapon struct {
	Name  string `json:"name"`
	Score int32  `json:"score"`
}

func decodeWeapon(buf *codec.DataBuffer) (Weapon, error) {
	var (
		w   Weapon
		err error
	)
	if w.Name, err = buf.ReadString(); err != nil {
		return w, fieldError("Weapon", "name", err)
	}
	if w.Score, err = buf.ReadInt(); err != nil {
		return w, fieldError("Weapon", "score", err)
	}
	return w, nil
}

func (w Weapon) encode(e *codec.LineEncoder) {
	e.WriteString(w.Name)
	e.WriteInt(w.Score)
}

// Hero is one row of the Hero table.
type Hero struct {
	ID        int32            `json:"id"`
	Name      string           `json:"name"`
	Quality   int32            `json:"quality"`
	Skills    []int32          `json:"skills"`
	Attribute map[string]int32 `json:"attribute"`
	Weapon    Weapon           `json:"weapon"`
	State     HeroState        `json:"state"`
}

// DecodeHero reads a Hero in field order.
func DecodeHero(buf *codec.DataBuffer) (*Hero, error) {
	var (
		h   Hero
		err error
	)
	if h.ID, err = buf.ReadInt(); err != nil {
		return nil, fieldError("Hero", "id", err)
	}
	if h.Name, err = buf.ReadString(); err != nil {
		return nil, fieldError("Hero", "name", err)
	}
	if h.Quality, err = buf.ReadInt(); err != nil {
		return nil, fieldError("Hero", "quality", err)
	}
	if h.Skills, err = codec.ReadList(buf, 1, buf.ReadInt); err != nil {
		return nil, fieldError("Hero", "skills", err)
	}
	if h.Attribute, err = codec.ReadMap(buf, 2, buf.ReadString, buf.ReadInt); err != nil {
		return nil, fieldError("Hero", "attribute", err)
	}
	if h.Weapon, err = decodeWeapon(buf); err != nil {
		return nil, fieldError("Hero", "weapon", err)
	}
	if h.State, err = codec.ReadEnum(buf, ParseHeroState); err != nil {
		return nil, fieldError("Hero", "state", err)
	}
	return &h, nil
}

// Key returns the hero id.
func (h *Hero) Key() int32 {
	return h.ID
}

// Encode writes the hero in the same field order DecodeHero reads.
func (h *Hero) Encode(e *codec.LineEncoder) {
	e.WriteInt(h.ID)
	e.WriteString(h.Name)
	e.WriteInt(h.Quality)
	codec.WriteList(e, h.Skills, e.WriteInt)
	codec.WriteMap(e, h.Attribute, e.WriteString, e.WriteInt)
	h.Weapon.encode(e)
	codec.WriteEnum(e, h.State)
}

func (h *Hero) String() string {
	return fmt.Sprintf("Hero{id=%d name=%q quality=%d state=%s}", h.ID, h.Name, h.Quality, h.State)
}
