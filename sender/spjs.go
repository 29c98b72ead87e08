package sender

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/ianbohannon/WAAM/gcode"
	"github.com/ianbohannon/WAAM/spjs"
)

const spjsBatchSize = 25

// SPJS hands a program to a Serial Port JSON Server, which owns the
// actual serial connection and its flow control.
type SPJS struct {
	sp   *spjs.SPJS
	port string
}

var _ Sender = &SPJS{}

func NewSPJS(sp *spjs.SPJS, port string) *SPJS {
	return &SPJS{sp: sp, port: port}
}

func (s *SPJS) Send(lr gcode.LineReader) error {
	var n int
	batch := make([]spjs.Data, 0, spjsBatchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		s.sp.SendJSON(spjs.JSON{Port: s.port, Data: batch})
		batch = batch[:0]
		return s.drain()
	}

	for {
		ln, err := lr.Read()
		if err == io.EOF {
			return flush()
		}
		if err != nil {
			return err
		}

		data := strings.TrimSpace(strings.SplitN(ln.Raw, ";", 2)[0])
		if data == "" {
			continue
		}

		n++
		batch = append(batch, spjs.Data{Data: data + "\n", ID: "waam-" + strconv.Itoa(n)})
		if len(batch) == spjsBatchSize {
			if err = flush(); err != nil {
				return err
			}
		}
	}
}

// drain surfaces any error the server reported between batches.
func (s *SPJS) drain() error {
	for {
		select {
		case msg := <-s.sp.Messages():
			if e, ok := msg.(*spjs.ErrorMessage); ok {
				return errors.New("spjs: " + e.Error)
			}
		default:
			return nil
		}
	}
}
