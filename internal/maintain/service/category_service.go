package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"maintain/internal/maintain/models"
	dErrors "maintain/pkg/domain-errors"
	"maintain/pkg/platform/sentinel"
)

// CategoryService manages the category tree. Names are unique among siblings,
// compared case-insensitively, and every mutation runs in one transaction
// together with its mapping rows.
type CategoryService struct {
	store  Store
	tx     StoreTx
	logger *slog.Logger
}

func NewCategoryService(store Store, opts ...Option) *CategoryService {
	cfg := buildConfig(store, opts)
	return &CategoryService{
		store:  store,
		tx:     cfg.tx,
		logger: cfg.logger,
	}
}

// ListCategories returns the top-level categories ordered by display order.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.CategorySummary, error) {
	categories, err := s.store.ListTopLevel(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list categories")
	}
	out := make([]models.CategorySummary, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.Summary())
	}
	return out, nil
}

// GetCategory returns a top-level category with its mappings and children.
func (s *CategoryService) GetCategory(ctx context.Context, name string) (*models.CategoryDetail, error) {
	var detail *models.CategoryDetail
	err := s.tx.RunInTx(ctx, func(st Store) error {
		category, err := st.FindCategory(ctx, nil, name)
		if err != nil {
			return translate(err, fmt.Sprintf("Category '%s' not found.", name), "", "failed to load category")
		}
		detail, err = s.detail(ctx, st, category)
		return err
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// GetSubCategory returns a category one level below the named parent.
func (s *CategoryService) GetSubCategory(ctx context.Context, parentName, name string) (*models.CategoryDetail, error) {
	var detail *models.CategoryDetail
	err := s.tx.RunInTx(ctx, func(st Store) error {
		parent, err := st.FindCategory(ctx, nil, parentName)
		if err != nil {
			return translate(err, fmt.Sprintf("Category '%s' not found.", parentName), "", "failed to load category")
		}
		category, err := st.FindCategory(ctx, &parent.ID, name)
		if err != nil {
			return translate(err, fmt.Sprintf("Sub-category '%s' not found for parent '%s'", name, parentName), "",
				"failed to load sub-category")
		}
		detail, err = s.detail(ctx, st, category)
		if err != nil {
			return err
		}
		detail.Parent = parent.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *CategoryService) detail(ctx context.Context, st Store, c *models.Category) (*models.CategoryDetail, error) {
	provisions, err := st.ProvisionTitles(ctx, c.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load category provisions")
	}
	instruments, err := st.InstrumentNames(ctx, c.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load category instruments")
	}
	children, err := st.ListChildren(ctx, c.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load sub-categories")
	}
	subCategories := make([]models.CategorySummary, 0, len(children))
	for _, child := range children {
		subCategories = append(subCategories, child.Summary())
	}
	return &models.CategoryDetail{
		Name:                c.Name,
		DisplayName:         c.DisplayName,
		Permission:          c.Permission,
		StatutoryProvisions: provisions,
		Instruments:         instruments,
		SubCategories:       subCategories,
	}, nil
}

// CreateCategory adds a top-level category and its mappings.
func (s *CategoryService) CreateCategory(ctx context.Context, in models.CategoryInput) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		conflict := fmt.Sprintf("Category '%s' already exists.", in.Name)
		return s.create(ctx, st, nil, in, conflict)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "category created", "category", in.Name)
	return nil
}

// CreateSubCategory adds a category under an existing top-level parent.
func (s *CategoryService) CreateSubCategory(ctx context.Context, parentName string, in models.CategoryInput) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		parent, err := st.FindCategory(ctx, nil, parentName)
		if err != nil {
			return translate(err, fmt.Sprintf("Parent '%s' does not exist.", parentName), "", "failed to load parent category")
		}
		conflict := fmt.Sprintf("Sub-category '%s' already exists under %s", in.Name, parentName)
		return s.create(ctx, st, parent, in, conflict)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "sub-category created", "category", in.Name, "parent", parentName)
	return nil
}

func (s *CategoryService) create(ctx context.Context, st Store, parent *models.Category, in models.CategoryInput, conflict string) error {
	var parentID *int64
	if parent != nil {
		parentID = &parent.ID
	}

	_, err := st.FindCategory(ctx, parentID, in.Name)
	switch {
	case err == nil:
		return dErrors.New(dErrors.CodeConflict, conflict)
	case !errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check category name")
	}

	category := &models.Category{
		Name:         in.Name,
		DisplayName:  in.DisplayName,
		ParentID:     parentID,
		DisplayOrder: in.DisplayOrder,
		Permission:   in.Permission,
	}
	if err := st.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) && parent != nil {
			return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Parent '%s' does not exist.", parent.Name))
		}
		return translate(err, "", conflict, "failed to create category")
	}

	return syncMappings(ctx, st, category.ID, in.Provisions, in.Instruments, false)
}

// UpdateCategory replaces a top-level category's fields and mappings.
func (s *CategoryService) UpdateCategory(ctx context.Context, name string, in models.CategoryInput) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		category, err := st.FindCategory(ctx, nil, name)
		if err != nil {
			return translate(err, fmt.Sprintf("Category '%s' does not exist.", name), "", "failed to load category")
		}
		conflict := fmt.Sprintf("Category with the name '%s' already exists.", in.Name)
		return s.update(ctx, st, category, in, conflict)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "category updated", "category", name, "new_name", in.Name)
	return nil
}

// UpdateSubCategory replaces a sub-category's fields and mappings.
func (s *CategoryService) UpdateSubCategory(ctx context.Context, parentName, name string, in models.CategoryInput) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		parent, err := st.FindCategory(ctx, nil, parentName)
		if err != nil {
			return translate(err, fmt.Sprintf("Category '%s' does not exist.", parentName), "", "failed to load category")
		}
		category, err := st.FindCategory(ctx, &parent.ID, name)
		if err != nil {
			return translate(err, fmt.Sprintf("Sub-category '%s' not found for parent '%s'", name, parentName), "",
				"failed to load sub-category")
		}
		conflict := fmt.Sprintf("Sub-category with the name '%s' already exists under %s.", in.Name, parentName)
		return s.update(ctx, st, category, in, conflict)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "sub-category updated", "category", name, "parent", parentName, "new_name", in.Name)
	return nil
}

func (s *CategoryService) update(ctx context.Context, st Store, category *models.Category, in models.CategoryInput, conflict string) error {
	if !strings.EqualFold(category.Name, in.Name) {
		_, err := st.FindCategory(ctx, category.ParentID, in.Name)
		switch {
		case err == nil:
			return dErrors.New(dErrors.CodeConflict, conflict)
		case !errors.Is(err, sentinel.ErrNotFound):
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check category name")
		}
	}

	category.Name = in.Name
	category.DisplayName = in.DisplayName
	category.Permission = in.Permission
	category.DisplayOrder = in.DisplayOrder
	if err := st.UpdateCategory(ctx, category); err != nil {
		return translate(err, "", conflict, "failed to update category")
	}

	return syncMappings(ctx, st, category.ID, in.Provisions, in.Instruments, true)
}

// DeleteCategory removes a top-level category, its immediate children and
// the mapping rows of both.
func (s *CategoryService) DeleteCategory(ctx context.Context, name string) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		category, err := st.FindCategory(ctx, nil, name)
		if err != nil {
			return translate(err, fmt.Sprintf("Category '%s' not found.", name), "", "failed to load category")
		}
		return deleteOneLevel(ctx, st, category)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "category deleted", "category", name)
	return nil
}

// DeleteSubCategory removes a sub-category, its immediate children and the
// mapping rows of both.
func (s *CategoryService) DeleteSubCategory(ctx context.Context, parentName, name string) error {
	err := s.tx.RunInTx(ctx, func(st Store) error {
		parent, err := st.FindCategory(ctx, nil, parentName)
		if err != nil {
			return translate(err, fmt.Sprintf("Category '%s' not found.", parentName), "", "failed to load category")
		}
		category, err := st.FindCategory(ctx, &parent.ID, name)
		if err != nil {
			return translate(err, fmt.Sprintf("Sub-category '%s' not found for parent '%s'", name, parentName), "",
				"failed to load sub-category")
		}
		return deleteOneLevel(ctx, st, category)
	})
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "sub-category deleted", "category", name, "parent", parentName)
	return nil
}

// deleteOneLevel walks exactly one level of children. A grandchild makes the
// parent foreign key refuse the child delete, which aborts the transaction.
func deleteOneLevel(ctx context.Context, st Store, category *models.Category) error {
	children, err := st.ListChildren(ctx, category.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load sub-categories")
	}

	childIDs := make([]int64, 0, len(children))
	for _, child := range children {
		childIDs = append(childIDs, child.ID)
	}
	refused := fmt.Sprintf("Category '%s' cannot be deleted: its sub-categories have sub-categories of their own.", category.Name)

	if err := st.DeleteMappings(ctx, childIDs); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete sub-category mappings")
	}
	if err := st.DeleteCategories(ctx, childIDs); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return dErrors.Wrap(err, dErrors.CodeConflict, refused)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete sub-categories")
	}
	if err := st.DeleteMappings(ctx, []int64{category.ID}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete category mappings")
	}
	if err := st.DeleteCategories(ctx, []int64{category.ID}); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			return dErrors.Wrap(err, dErrors.CodeConflict, refused)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete category")
	}
	return nil
}
