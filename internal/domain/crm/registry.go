package crm

import "context"

// RegistryClient pulls customer records from the central customer registry.
// Implementations must translate transport and protocol failures into the
// shared upstream error sentinels so callers can map them uniformly.
type RegistryClient interface {
	// FetchCustomers authenticates when credentials are configured and
	// returns every customer record the registry exposes. Records lacking
	// identity fields are returned as-is; filtering is the caller's job.
	FetchCustomers(ctx context.Context) ([]CustomerRecord, error)
}
