package encoding

import (
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// zonedTimeExtID tags times packed with their zone offset. msgpack's own
// timestamp extension keeps only the instant and decodes into time.Local,
// which moves dates stored at midnight in another zone to a different day.
const zonedTimeExtID int8 = 1

func init() {
	msgpack.RegisterExt(zonedTimeExtID, (*zonedTime)(nil))
}

type zonedTime struct {
	t time.Time
}

func (z *zonedTime) MarshalMsgpack() ([]byte, error) {
	return z.t.MarshalBinary()
}

func (z *zonedTime) UnmarshalMsgpack(b []byte) error {
	return z.t.UnmarshalBinary(b)
}

// wrapTimes copies the maps and slices of v, replacing every time.Time
// with its zoned form. Times inside structs keep msgpack's encoding.
func wrapTimes(v any) any {
	switch x := v.(type) {
	case time.Time:
		return &zonedTime{t: x}
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = wrapTimes(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = wrapTimes(e)
		}
		return out
	}
	return v
}

// unwrapTimes replaces decoded zoned times with time.Time in place.
func unwrapTimes(v any) any {
	switch x := v.(type) {
	case *zonedTime:
		return x.t
	case map[string]any:
		for k, e := range x {
			x[k] = unwrapTimes(e)
		}
	case []any:
		for i, e := range x {
			x[i] = unwrapTimes(e)
		}
	}
	return v
}
