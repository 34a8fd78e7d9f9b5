package api

import (
	"net/http"
	"room-matching-service/internal/adapters/cache"
	"room-matching-service/internal/api/handlers"
	"room-matching-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// repo and cache may be nil: problem endpoints then answer 503 and solves are
// not cached.
func NewRouter(repo ports.ProblemRepository, resultCache ports.ResultCache, defaults handlers.Defaults) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{
		StoreEnabled: repo != nil,
		CacheBackend: cacheBackend(resultCache),
	}

	solveHandler := &handlers.SolveHandler{Cache: resultCache, Defaults: defaults}
	problemHandler := &handlers.ProblemHandler{
		Repo:     repo,
		Cache:    resultCache,
		Defaults: defaults,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/solve", solveHandler.Solve)
	mux.HandleFunc("/solve/batch", solveHandler.SolveBatch)
	mux.HandleFunc("/problems", problemHandler.Problems)
	mux.HandleFunc("/problems/solve", problemHandler.Solve)
	mux.HandleFunc("/problems/solution", problemHandler.Solution)

	return loggingMiddleware(mux)
}

func cacheBackend(c ports.ResultCache) string {
	switch c.(type) {
	case nil:
		return ""
	case *cache.RedisResultCache:
		return "redis"
	case *cache.MemoryResultCache:
		return "memory"
	default:
		return "custom"
	}
}
