package tables

import (
	"fmt"

	"github.com/ssargent/easytables/pkg/codec"
)

// NPCHero is one row of the NPCHero table.
type NPCHero struct {
	ID      int32   `json:"id"`
	Name    string  `json:"name"`
	Quality int32   `json:"quality"`
	Skills  []int32 `json:"skills"`
	Display bool    `json:"display"`
}

// DecodeNPCHero reads an NPCHero in field order.
func DecodeNPCHero(buf *codec.DataBuffer) (*NPCHero, error) {
	var (
		n   NPCHero
		err error
	)
	if n.ID, err = buf.ReadInt(); err != nil {
		return nil, fieldError("NPCHero", "id", err)
	}
	if n.Name, err = buf.ReadString(); err != nil {
		return nil, fieldError("NPCHero", "name", err)
	}
	if n.Quality, err = buf.ReadInt(); err != nil {
		return nil, fieldError("NPCHero", "quality", err)
	}
	if n.Skills, err = codec.ReadList(buf, 1, buf.ReadInt); err != nil {
		return nil, fieldError("NPCHero", "skills", err)
	}
	if n.Display, err = buf.ReadBool(); err != nil {
		return nil, fieldError("NPCHero", "display", err)
	}
	return &n, nil
}

func (n *NPCHero) Key() int32 {
	return n.ID
}

func (n *NPCHero) Encode(e *codec.LineEncoder) {
	e.WriteInt(n.ID)
	e.WriteString(n.Name)
	e.WriteInt(n.Quality)
	codec.WriteList(e, n.Skills, e.WriteInt)
	e.WriteBool(n.Display)
}

func (n *NPCHero) String() string {
	return fmt.Sprintf("NPCHero{id=%d name=%q display=%t}", n.ID, n.Name, n.Display)
}
