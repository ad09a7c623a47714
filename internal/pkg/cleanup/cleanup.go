package cleanup

import (
	"context"
	"net/http"
	"time"

	"credverify/internal/pkg/logger"
)

// CleanupResources shuts the HTTP server down first so no new requests come
// in, then runs the remaining shutdown hooks (broker flushes, client closes)
// in the order given.
func CleanupResources(ctx context.Context, server *http.Server, shutdowns ...func()) {
	logger.CtxInfo(ctx, "Cleanup started")

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.CtxError(ctx, "Failed to shutdown HTTP server", err)
		} else {
			logger.CtxInfo(ctx, "HTTP server shutdown successfully")
		}
	}

	for _, shutdown := range shutdowns {
		if shutdown != nil {
			shutdown()
		}
	}

	logger.CtxInfo(ctx, "Cleanup completed")
}
