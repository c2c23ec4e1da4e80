package store

import "context"

// Health is the result of a store health check.
type Health struct {
	Status  string         `json:"status"` // healthy | unhealthy
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// HealthCheck probes the store with a trivial query.
func (s *Store) HealthCheck(ctx context.Context) Health {
	records, err := s.RunRead(ctx, `RETURN 1 AS ok`, nil)
	if err != nil {
		s.log.Error("store health check failed", "err", err)
		return Health{
			Status:  "unhealthy",
			Message: "cannot reach graph store",
			Detail:  map[string]any{"error": err.Error()},
		}
	}
	if len(records) == 0 {
		return Health{Status: "unhealthy", Message: "health probe returned no rows"}
	}
	if ok, _ := records[0]["ok"].(int64); ok != 1 {
		return Health{
			Status:  "unhealthy",
			Message: "health probe returned unexpected result",
			Detail:  map[string]any{"expected": 1, "actual": records[0]["ok"]},
		}
	}
	return Health{Status: "healthy", Message: "graph store connection is healthy"}
}
