package services

import (
	"context"
	"fmt"
)

// PropertyCounter is the part of the property repository the dashboard needs.
type PropertyCounter interface {
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

// ClientCounter is the part of the client repository the dashboard needs.
type ClientCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Stats are the dashboard counters.
type Stats struct {
	TotalProperties     int64 `json:"total_properties"`
	AvailableProperties int64 `json:"available_properties"`
	TotalClients        int64 `json:"total_clients"`
}

type DashboardService struct {
	properties PropertyCounter
	clients    ClientCounter
}

func NewDashboardService(properties PropertyCounter, clients ClientCounter) *DashboardService {
	return &DashboardService{properties: properties, clients: clients}
}

// Stats counts total and available properties and total clients.
func (s *DashboardService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.TotalProperties, err = s.properties.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count properties: %w", err)
	}
	if st.AvailableProperties, err = s.properties.CountAvailable(ctx); err != nil {
		return Stats{}, fmt.Errorf("count available properties: %w", err)
	}
	if st.TotalClients, err = s.clients.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count clients: %w", err)
	}
	return st, nil
}
