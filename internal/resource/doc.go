// Package resource bounds what a scan may consume: heap memory for buffered
// sources, worker goroutines for parallel aggregation, and IO bandwidth for
// remote blob downloads.
//
//	┌──────────────────────────────────────────────────────┐
//	│                     Controller                       │
//	├────────────────┬────────────────┬────────────────────┤
//	│ Memory budget  │ Scan workers   │ IO rate limiter    │
//	│ (fail-fast)    │ (semaphore)    │ (token bucket)     │
//	├────────────────┼────────────────┼────────────────────┤
//	│ AcquireMemory  │ AcquireWorker  │ AcquireIO          │
//	│ ReleaseMemory  │ ReleaseWorker  │ NewRateLimited-    │
//	│ MemoryUsage    │                │ Reader             │
//	└────────────────┴────────────────┴────────────────────┘
//
// AcquireMemory is non-blocking and returns ErrMemoryLimitExceeded immediately:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 30})
//	if err := rc.AcquireMemory(size); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(size)
//
// All methods are safe for concurrent use, and all of them are no-ops on a nil
// *Controller so limits stay optional without nil checks at call sites.
package resource
