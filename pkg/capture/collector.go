package capture

import (
	"context"

	"github.com/xaionaro-go/xsync"
)

// collector accumulates the PCM stream written by the recording backend
// until it has enough bytes, then signals Done and drops the rest.
type collector struct {
	locker   xsync.Mutex
	buf      []byte
	required int
	done     chan struct{}
}

func newCollector(requiredBytes int) *collector {
	return &collector{
		buf:      make([]byte, 0, requiredBytes),
		required: requiredBytes,
		done:     make(chan struct{}),
	}
}

func (c *collector) Write(p []byte) (int, error) {
	ctx := xsync.WithNoLogging(context.TODO(), true)
	c.locker.Do(ctx, func() {
		left := c.required - len(c.buf)
		if left <= 0 {
			return
		}
		if len(p) > left {
			c.buf = append(c.buf, p[:left]...)
		} else {
			c.buf = append(c.buf, p...)
		}
		if len(c.buf) == c.required {
			close(c.done)
		}
	})
	return len(p), nil
}

func (c *collector) Done() <-chan struct{} {
	return c.done
}

// Samples returns a copy of what was collected so far.
func (c *collector) Samples() []float32 {
	ctx := xsync.WithNoLogging(context.TODO(), true)
	return xsync.DoR1(ctx, &c.locker, func() []float32 {
		return append([]float32(nil), convertBytesToFloat32Slice(c.buf)...)
	})
}
