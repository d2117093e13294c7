package projections

import (
	"context"
	"fmt"

	storeService "furnitech/internal/adapters/storage/service"
	"furnitech/internal/domain/service"
)

// ServiceLister defines the service store interface needed by service listings.
type ServiceLister interface {
	List(ctx context.Context, filter storeService.ListFilter) ([]service.Service, error)
}

// GetServicesDeps holds dependencies for the service listings.
type GetServicesDeps struct {
	ServiceStore ServiceLister
}

// ServicesPageResult groups the public catalogue by category.
type ServicesPageResult struct {
	Office []service.Service
	Home   []service.Service
}

// QueryGetServicesPage returns active services per category, each ordered by order index.
func QueryGetServicesPage(ctx context.Context, deps GetServicesDeps) (ServicesPageResult, error) {
	var res ServicesPageResult
	var err error
	res.Office, err = deps.ServiceStore.List(ctx, storeService.ListFilter{Category: service.CategoryOffice, ActiveOnly: true})
	if err != nil {
		return ServicesPageResult{}, fmt.Errorf("list office services: %w", err)
	}
	res.Home, err = deps.ServiceStore.List(ctx, storeService.ListFilter{Category: service.CategoryHome, ActiveOnly: true})
	if err != nil {
		return ServicesPageResult{}, fmt.Errorf("list home services: %w", err)
	}
	return res, nil
}

// QueryGetAdminServices returns every service, active or not, ordered by category then order index.
func QueryGetAdminServices(ctx context.Context, deps GetServicesDeps) ([]service.Service, error) {
	list, err := deps.ServiceStore.List(ctx, storeService.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return list, nil
}
