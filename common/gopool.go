package common

import (
	"context"
	"fmt"
	"math"
	"runtime/debug"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/contributory/ai-gateway/common/logger"
)

var backgroundPool gopool.Pool

func init() {
	backgroundPool = gopool.NewPool("gopool.BackgroundPool", math.MaxInt32, gopool.NewConfig())
	backgroundPool.SetPanicHandler(func(ctx context.Context, i interface{}) {
		logger.SysError(fmt.Sprintf("panic in gopool.BackgroundPool: %v\n%s", i, debug.Stack()))
	})
}

// SafeGoroutine runs f on the background pool; panics are logged, not fatal.
func SafeGoroutine(f func()) {
	backgroundPool.Go(f)
}
