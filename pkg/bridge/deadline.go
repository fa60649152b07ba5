package bridge

import (
	"context"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/target"
)

// ExecuteContext layers deadline handling on top of Execute. The bridge
// itself never cancels a transport call; if the context expires first the
// caller gets TransportTimeout and the buffer content is unspecified while
// the abandoned call runs to completion in the background. Hardware
// transactions cannot be safely interrupted mid-flight, so this is the only
// honest timeout shape.
func (b *Bridge) ExecuteContext(ctx context.Context, pos target.Position, engineName string, op engine.Op, buf *databuf.Buffer, opts engine.Options) rc.ReturnCode {
	done := make(chan rc.ReturnCode, 1)
	go func() {
		done <- b.Execute(pos, engineName, op, buf, opts)
	}()
	select {
	case out := <-done:
		return out
	case <-ctx.Done():
		return rc.ClientError(rc.TransportTimeout)
	}
}
