// Package picker waits for the user to click a screen position.
package picker

import (
	"context"
	"fmt"
	"time"

	"github.com/leandrodaf/midiplay/sdk/contracts"
)

// DefaultTimeout is how long Pick waits for a click.
const DefaultTimeout = 30 * time.Second

// Pick returns the position of the next left click reported by src. Clicks
// at the origin are ignored: sources report them before they know the
// pointer position. Pick fails with contracts.ErrPickTimeout when no click
// arrives within timeout. The source is always stopped before Pick returns.
func Pick(ctx context.Context, src contracts.PointerSource, timeout time.Duration) (contracts.Point, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clicks := make(chan contracts.Point, 8)
	stop := make(chan struct{})
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- src.Listen(clicks, stop)
	}()

	release := func() {
		close(stop)
		<-listenErr
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case pt := <-clicks:
			if pt == (contracts.Point{}) {
				continue
			}
			release()
			return pt, nil
		case err := <-listenErr:
			close(stop)
			if err == nil {
				err = fmt.Errorf("pointer source stopped before a click")
			}
			return contracts.Point{}, err
		case <-timer.C:
			release()
			return contracts.Point{}, fmt.Errorf("%w after %s", contracts.ErrPickTimeout, timeout)
		case <-ctx.Done():
			release()
			return contracts.Point{}, ctx.Err()
		}
	}
}
