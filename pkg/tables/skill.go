package tables

import (
	"fmt"

	"github.com/ssargent/easytables/pkg/codec"
)

// Skill is one row of the Skill table. BuffProbability maps a Buff id to the
// chance of applying it.
type Skill struct {
	ID              int32           `json:"id"`
	Name            string          `json:"name"`
	CD              int32           `json:"cd"`
	BuffProbability map[int32]int32 `json:"buff_probability"`
}

// DecodeSkill reads a Skill in field order.
func DecodeSkill(buf *codec.DataBuffer) (*Skill, error) {
	var (
		s   Skill
		err error
	)
	if s.ID, err = buf.ReadInt(); err != nil {
		return nil, fieldError("Skill", "id", err)
	}
	if s.Name, err = buf.ReadString(); err != nil {
		return nil, fieldError("Skill", "name", err)
	}
	if s.CD, err = buf.ReadInt(); err != nil {
		return nil, fieldError("Skill", "cd", err)
	}
	if s.BuffProbability, err = codec.ReadMap(buf, 2, buf.ReadInt, buf.ReadInt); err != nil {
		return nil, fieldError("Skill", "buff_probability", err)
	}
	return &s, nil
}

func (s *Skill) Key() int32 {
	return s.ID
}

func (s *Skill) Encode(e *codec.LineEncoder) {
	e.WriteInt(s.ID)
	e.WriteString(s.Name)
	e.WriteInt(s.CD)
	codec.WriteMap(e, s.BuffProbability, e.WriteInt, e.WriteInt)
}

func (s *Skill) String() string {
	return fmt.Sprintf("Skill{id=%d name=%q cd=%d}", s.ID, s.Name, s.CD)
}
