package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/coursenav/internal/db"
	"github.com/alexanderramin/coursenav/internal/importer"
	"github.com/alexanderramin/coursenav/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService writes every imported row through one transaction, so a
// failed import leaves nothing behind.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportTree(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadTreeSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportTreeFromSchema(ctx context.Context, schema *importer.TreeSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.TreeSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"root_ref": schema.Resource.Ref}
	defer observe(ctx, s.observer, "import-tree", startedAt, fields, &err)

	if errs := importer.ValidateTreeSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated := importer.Convert(schema)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		resources := repository.NewSQLiteResourceRepo(tx)
		links := repository.NewSQLiteLinkRepo(tx)
		products := repository.NewSQLiteProductRepo(tx)

		for _, res := range generated.Resources {
			if err := resources.Create(ctx, res); err != nil {
				return fmt.Errorf("creating resource %q: %w", res.DisplayTitle(), err)
			}
		}
		for _, l := range generated.Links {
			if err := links.Upsert(ctx, l); err != nil {
				return fmt.Errorf("creating link: %w", err)
			}
		}
		for i, p := range generated.Products {
			if err := products.Create(ctx, p); err != nil {
				return fmt.Errorf("creating product %q: %w", p.Name, err)
			}
			if err := products.AttachResource(ctx, p.ID, generated.Root.ID, i); err != nil {
				return fmt.Errorf("attaching product %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["resource_count"] = len(generated.Resources)
	return &ImportResult{
		Root:          generated.Root,
		ResourceCount: len(generated.Resources),
		LinkCount:     len(generated.Links),
		ProductCount:  len(generated.Products),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
