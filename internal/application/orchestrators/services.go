package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	storeService "furnitech/internal/adapters/storage/service"
	"furnitech/internal/adapters/upload"
	"furnitech/internal/domain/service"
)

// ServiceStoreForOrchestrator defines the store interface needed by service commands.
type ServiceStoreForOrchestrator interface {
	GetByID(ctx context.Context, id string) (service.Service, error)
	Save(ctx context.Context, s service.Service) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	NextOrderIndex(ctx context.Context, category string) (int, error)
}

var _ ServiceStoreForOrchestrator = (storeService.Store)(nil)

// ErrServiceNotFound is returned for edits and deletes of unknown ids.
var ErrServiceNotFound = errors.New("service not found")

// ServiceDeps holds dependencies for service commands.
type ServiceDeps struct {
	ServiceStore ServiceStoreForOrchestrator
	Images       ImageSaver
	GenerateID   func() string
	Now          func() time.Time
}

// ServiceInput carries the editable fields of a service plus an optional image.
type ServiceInput struct {
	ID            string // ignored by add
	Title         string
	Description   string
	Category      string
	ImageFilename string
	Image         io.Reader
}

// ServiceResult reports the saved service and any image problem.
// ImageErr is set when an image was supplied but not stored; the service
// itself was still saved.
type ServiceResult struct {
	Service  service.Service
	ImageErr error
}

// ExecuteAddService creates an active service at the end of its category.
// PRE: Title, Description non-empty; Category is office or home
// POST: Service persisted with OrderIndex one past the category's highest; image attached only if stored
func ExecuteAddService(ctx context.Context, input ServiceInput, deps ServiceDeps) (ServiceResult, error) {
	svc := service.Service{
		ID:          idOr(deps.GenerateID),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Active:      true,
		CreatedAt:   nowOr(deps.Now),
	}
	if err := svc.Validate(); err != nil {
		return ServiceResult{}, err
	}

	var result ServiceResult
	svc.ImagePath, result.ImageErr = saveServiceImage(input, deps.Images)

	next, err := deps.ServiceStore.NextOrderIndex(ctx, svc.Category)
	if err != nil {
		return ServiceResult{}, fmt.Errorf("next order index: %w", err)
	}
	svc.OrderIndex = next

	if err := deps.ServiceStore.Save(ctx, svc); err != nil {
		return ServiceResult{}, fmt.Errorf("save service: %w", err)
	}
	slog.Info("service_event", "event", "service_added", "service_id", svc.ID, "category", svc.Category, "order_index", svc.OrderIndex)

	result.Service = svc
	return result, nil
}

// ExecuteEditService overwrites title, description and category of an existing service.
// PRE: ID names an existing service
// POST: On validation error nothing changes; the image changes only when a new upload is stored
func ExecuteEditService(ctx context.Context, input ServiceInput, deps ServiceDeps) (ServiceResult, error) {
	svc, err := getService(ctx, deps.ServiceStore, input.ID)
	if err != nil {
		return ServiceResult{}, err
	}

	svc.Title = strings.TrimSpace(input.Title)
	svc.Description = strings.TrimSpace(input.Description)
	svc.Category = input.Category
	if err := svc.Validate(); err != nil {
		return ServiceResult{}, err
	}

	var result ServiceResult
	if path, imgErr := saveServiceImage(input, deps.Images); path != "" {
		svc.ImagePath = path
	} else {
		result.ImageErr = imgErr
	}

	if err := deps.ServiceStore.Save(ctx, svc); err != nil {
		return ServiceResult{}, fmt.Errorf("save service: %w", err)
	}
	slog.Info("service_event", "event", "service_updated", "service_id", svc.ID)

	result.Service = svc
	return result, nil
}

// ExecuteDeleteService removes a service. Its image file stays on disk.
// PRE: id names an existing service
// POST: The service row is gone
func ExecuteDeleteService(ctx context.Context, id string, deps ServiceDeps) error {
	if _, err := getService(ctx, deps.ServiceStore, id); err != nil {
		return err
	}
	if err := deps.ServiceStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	slog.Info("service_event", "event", "service_deleted", "service_id", id)
	return nil
}

// ExecuteSeedServices fills an empty service table with the default catalogue.
// POST: Returns the number of services created; 0 when any service already exists
func ExecuteSeedServices(ctx context.Context, deps ServiceDeps) (int, error) {
	n, err := deps.ServiceStore.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	now := nowOr(deps.Now)
	created := 0
	for _, svc := range service.DefaultCatalogue() {
		svc.ID = idOr(deps.GenerateID)
		svc.CreatedAt = now
		if err := deps.ServiceStore.Save(ctx, svc); err != nil {
			return created, fmt.Errorf("seed service %q: %w", svc.Title, err)
		}
		created++
	}
	slog.Info("service_event", "event", "services_seeded", "count", created)
	return created, nil
}

func getService(ctx context.Context, store ServiceStoreForOrchestrator, id string) (service.Service, error) {
	if id == "" {
		return service.Service{}, ErrServiceNotFound
	}
	svc, err := store.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return service.Service{}, ErrServiceNotFound
	}
	if err != nil {
		return service.Service{}, fmt.Errorf("load service: %w", err)
	}
	return svc, nil
}

// saveServiceImage stores the optional image. A missing file is not an error.
func saveServiceImage(input ServiceInput, images ImageSaver) (string, error) {
	if images == nil || input.Image == nil {
		return "", nil
	}
	path, err := images.Save(input.ImageFilename, input.Image)
	if errors.Is(err, upload.ErrNoFile) {
		return "", nil
	}
	if err != nil {
		slog.Warn("upload_rejected", "target", "service", "filename", input.ImageFilename, "error", err)
		return "", err
	}
	return path, nil
}
