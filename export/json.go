package export

import (
	"io"

	"github.com/hupe1980/tickscan/aggregate"
	"github.com/hupe1980/tickscan/codec"
)

// WriteJSON writes t as a JSON array of rows sorted by instrument, followed
// by a newline. A nil codec selects codec.Default.
func WriteJSON(w io.Writer, t aggregate.Table, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}
	rows := Rows(t)
	if rows == nil {
		rows = []Row{}
	}
	b, err := c.Marshal(rows)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
