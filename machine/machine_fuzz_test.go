package machine

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func FuzzAssembler(f *testing.F) {
	for _, line := range []string{
		"10 6 4 - / p",
		"3 4j abs p",
		": sq dup * ; 5 sq p",
		"3 [ 1 - dup ]",
		"1 2 3 rot swap over ds",
		"42 7 save 7 load 7 creg dr",
		"4 1 vcplx 1j 0 1 vsave 0 1 vload dv",
		"] ; : : [ save",
		"1e400 -0 nan 0x10 1j2",
	} {
		f.Add(line)
	}

	f.Fuzz(func(t *testing.T, line string) {
		assert := assert.New(t)

		// Large vectors are slow to allocate, and not interesting here.
		if strings.Contains(line, "vreal") || strings.Contains(line, "vcplx") || strings.Contains(line, "vcreate") {
			for _, word := range strings.Fields(line) {
				x, err := strconv.ParseFloat(word, 64)
				if err == nil && x > 4096 {
					t.Skip()
				}
			}
		}

		m := NewMachine(nil)
		asm := NewAssembler(m, nil)

		timer := time.AfterFunc(50*time.Millisecond, m.Interrupt)
		defer timer.Stop()

		var err error
		assert.NotPanics(func() {
			err = asm.Line(line)
		}, line)

		if errors.Is(err, ErrQuit) {
			return
		}

		assert.LessOrEqual(m.Pc, m.Len(), line)
		if !asm.Defining() {
			assert.Equal(m.Len(), m.Pc, line)
			assert.Equal(0, len(asm.Pending), line)
		}
		if err != nil {
			assert.Equal(0, m.Return.Len(), line)
		}
	})
}
