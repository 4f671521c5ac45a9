package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"spiceshop/internal/domain/model"
	"spiceshop/internal/domain/money"
	repo "spiceshop/internal/repository"
	"spiceshop/internal/validator"

	"github.com/google/uuid"
)

// 管理画面からの商品・カテゴリ・レシピ・イベントの作成/更新/削除。
// 変更は必ず監査ログと同じTxで保存する。
type AdminCatalogUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
	clock Clock
}

func NewAdminCatalogUsecase(tx repo.TransactionManager, idGen IDGenerator, clock Clock) *AdminCatalogUsecase {
	return &AdminCatalogUsecase{tx: tx, idGen: idGen, clock: clock}
}

type ProductInput struct {
	Title       string
	Description string
	Price       money.Money
	ImageURL    string
	CategoryID  *string
}

type CategoryInput struct {
	Name string
}

type RecipeInput struct {
	Title      string
	Content    string
	ImageURL   string
	YouTubeURL string
}

type EventInput struct {
	Title    string
	Address  string
	MapsURL  string
	ImageURL string
}

// =====================
// products
// =====================

func (u *AdminCatalogUsecase) CreateProduct(ctx context.Context, actor string, in ProductInput) (model.Product, error) {
	in, err := normalizeProduct(in)
	if err != nil {
		return model.Product{}, err
	}

	var out model.Product
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := checkCategory(ctx, r, in.CategoryID); err != nil {
			return err
		}
		now := u.clock.Now()
		p, err := r.Products().Create(ctx, model.Product{
			ID:          u.idGen.NewID(),
			Title:       in.Title,
			Description: in.Description,
			Price:       in.Price,
			ImageURL:    in.ImageURL,
			CategoryID:  in.CategoryID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fromRepoErr(err)
		}
		out = p
		return u.audit(ctx, r, actor, model.AuditActionCreate, model.AuditResourceProduct, p.ID, nil, p)
	})
	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

func (u *AdminCatalogUsecase) UpdateProduct(ctx context.Context, actor string, id string, in ProductInput) (model.Product, error) {
	in, err := normalizeProduct(in)
	if err != nil {
		return model.Product{}, err
	}

	var out model.Product
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, id)
		if err != nil {
			return fromRepoErr(err)
		}
		if err := checkCategory(ctx, r, in.CategoryID); err != nil {
			return err
		}

		after := before
		after.Title = in.Title
		after.Description = in.Description
		after.Price = in.Price
		after.ImageURL = in.ImageURL
		after.CategoryID = in.CategoryID
		after.UpdatedAt = u.clock.Now()
		if err := r.Products().Update(ctx, after); err != nil {
			return fromRepoErr(err)
		}
		out = after
		return u.audit(ctx, r, actor, model.AuditActionUpdate, model.AuditResourceProduct, id, before, after)
	})
	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

func (u *AdminCatalogUsecase) DeleteProduct(ctx context.Context, actor string, id string) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, id)
		if err != nil {
			return fromRepoErr(err)
		}
		if err := r.Products().Delete(ctx, id); err != nil {
			return fromRepoErr(err)
		}
		return u.audit(ctx, r, actor, model.AuditActionDelete, model.AuditResourceProduct, id, before, nil)
	})
}

func normalizeProduct(in ProductInput) (ProductInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := validator.First(
		validator.Required("title", in.Title),
		validator.MaxLen("title", in.Title, 255),
		validator.OptionalURL("image_url", in.ImageURL),
	); err != nil {
		return in, badRequest(err)
	}
	if in.Price.IsNegative() {
		return in, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Price > money.MaxStored {
		return in, NewHTTPError(http.StatusBadRequest, "price too large")
	}

	// 空文字のカテゴリは「なし」
	if in.CategoryID != nil {
		id := strings.TrimSpace(*in.CategoryID)
		if id == "" {
			in.CategoryID = nil
		} else if _, err := uuid.Parse(id); err != nil {
			return in, NewHTTPError(http.StatusBadRequest, "invalid category_id")
		} else {
			in.CategoryID = &id
		}
	}
	return in, nil
}

func checkCategory(ctx context.Context, r repo.TxRepos, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	_, err := r.Categories().FindByID(ctx, *categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, "category not found")
	}
	if err != nil {
		return fromRepoErr(err)
	}
	return nil
}

// =====================
// categories
// =====================

func (u *AdminCatalogUsecase) CreateCategory(ctx context.Context, actor string, in CategoryInput) (model.Category, error) {
	name, slug, err := normalizeCategory(in)
	if err != nil {
		return model.Category{}, err
	}

	var out model.Category
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().Create(ctx, model.Category{
			ID:        u.idGen.NewID(),
			Name:      name,
			Slug:      slug,
			CreatedAt: u.clock.Now(),
		})
		if errors.Is(err, repo.ErrConflict) {
			return NewHTTPError(http.StatusConflict, "category already exists")
		}
		if err != nil {
			return fromRepoErr(err)
		}
		out = c
		return u.audit(ctx, r, actor, model.AuditActionCreate, model.AuditResourceCategory, c.ID, nil, c)
	})
	if err != nil {
		return model.Category{}, err
	}
	return out, nil
}

func (u *AdminCatalogUsecase) UpdateCategory(ctx context.Context, actor string, id string, in CategoryInput) (model.Category, error) {
	name, slug, err := normalizeCategory(in)
	if err != nil {
		return model.Category{}, err
	}

	var out model.Category
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Categories().FindByID(ctx, id)
		if err != nil {
			return fromRepoErr(err)
		}
		after := before
		after.Name = name
		after.Slug = slug
		err = r.Categories().Update(ctx, after)
		if errors.Is(err, repo.ErrConflict) {
			return NewHTTPError(http.StatusConflict, "category already exists")
		}
		if err != nil {
			return fromRepoErr(err)
		}
		out = after
		return u.audit(ctx, r, actor, model.AuditActionUpdate, model.AuditResourceCategory, id, before, after)
	})
	if err != nil {
		return model.Category{}, err
	}
	return out, nil
}

func (u *AdminCatalogUsecase) DeleteCategory(ctx context.Context, actor string, id string) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Categories().FindByID(ctx, id)
		if err != nil {
			return fromRepoErr(err)
		}
		if err := r.Categories().Delete(ctx, id); err != nil {
			return fromRepoErr(err)
		}
		return u.audit(ctx, r, actor, model.AuditActionDelete, model.AuditResourceCategory, id, before, nil)
	})
}

func normalizeCategory(in CategoryInput) (string, string, error) {
	name := strings.TrimSpace(in.Name)
	if err := validator.First(
		validator.Required("name", name),
		validator.MaxLen("name", name, 255),
	); err != nil {
		return "", "", badRequest(err)
	}
	slug := Slugify(name)
	if strings.Trim(slug, "-") == "" {
		return "", "", NewHTTPError(http.StatusBadRequest, "name must contain letters or digits")
	}
	return name, slug, nil
}

// =====================
// recipes
// =====================

func (u *AdminCatalogUsecase) CreateRecipe(ctx context.Context, actor string, in RecipeInput) (RecipeOutput, error) {
	in, err := normalizeRecipe(in)
	if err != nil {
		return RecipeOutput{}, err
	}

	var out model.Recipe
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()
		rc, err := r.Recipes().Create(ctx, model.Recipe{
			ID:         u.idGen.NewID(),
			Title:      in.Title,
			Content:    in.Content,
			ImageURL:   in.ImageURL,
			YouTubeURL: in.YouTubeURL,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return fromRepoErr(err)
		}
		out = rc
		return u.audit(ctx, r, actor, model.AuditActionCreate, model.AuditResourceRecipe, rc.ID, nil, rc)
	})
	if err != nil {
		return RecipeOutput{}, err
	}
	return toRecipeOutput(out), nil
}

func (u *AdminCatalogUsecase) UpdateRecipe(ctx context.Context, actor string, id string, in RecipeInput) (RecipeOutput, error) {
	in, err := normalizeRecipe(in)
	if err != nil {
		return RecipeOutput{}, err
	}

	var out model.Recipe
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Recipes().FindByID(ctx, id)
		if err != nil {
			return fromRepoErr(err)
		}
		after := before
		after.Title = in.Title
		after.Content = in.Content
		after.ImageURL = in.ImageURL
		after.YouTubeURL = in.YouTubeURL
		after.UpdatedAt = u.clock.Now()
		if err := r.Recipes().Update(ctx, after); err != nil {
			return fromRepoErr(err)
		}
		out = after
		return u.audit(ctx, r, actor, model.AuditActionUpdate, model.AuditResourceRecipe, id, before, after)
	})
	if err != nil {
		return RecipeOutput{}, err
	}
	return toRecipeOutput(out), nil
}

func (u *AdminCatalogUsecase) DeleteRecipe(ctx context.Context, actor string, id string) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Recipes().FindByID(ctx, id)
		if err != nil {
			return fromRepoErr(err)
		}
		if err := r.Recipes().Delete(ctx, id); err != nil {
			return fromRepoErr(err)
		}
		return u.audit(ctx, r, actor, model.AuditActionDelete, model.AuditResourceRecipe, id, before, nil)
	})
}

func normalizeRecipe(in RecipeInput) (RecipeInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.YouTubeURL = strings.TrimSpace(in.YouTubeURL)

	if err := validator.First(
		validator.Required("title", in.Title),
		validator.MaxLen("title", in.Title, 255),
		validator.OptionalURL("image_url", in.ImageURL),
		validator.OptionalURL("youtube_url", in.YouTubeURL),
	); err != nil {
		return in, badRequest(err)
	}
	// 動画URLは埋め込めるものだけ
	if in.YouTubeURL != "" && YouTubeID(in.YouTubeURL) == "" {
		return in, NewHTTPError(http.StatusBadRequest, "invalid youtube_url")
	}
	return in, nil
}

// =====================
// events
// =====================

func (u *AdminCatalogUsecase) CreateEvent(ctx context.Context, actor string, in EventInput) (model.Event, error) {
	in, err := normalizeEvent(in)
	if err != nil {
		return model.Event{}, err
	}

	var out model.Event
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := u.clock.Now()
		e, err := r.Events().Create(ctx, model.Event{
			ID:        u.idGen.NewID(),
			Title:     in.Title,
			Address:   in.Address,
			MapsURL:   in.MapsURL,
			ImageURL:  in.ImageURL,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fromRepoErr(err)
		}
		out = e
		return u.audit(ctx, r, actor, model.AuditActionCreate, model.AuditResourceEvent, e.ID, nil, e)
	})
	if err != nil {
		return model.Event{}, err
	}
	return out, nil
}

func (u *AdminCatalogUsecase) UpdateEvent(ctx context.Context, actor string, id string, in EventInput) (model.Event, error) {
	in, err := normalizeEvent(in)
	if err != nil {
		return model.Event{}, err
	}

	var out model.Event
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Events().FindByID(ctx, id)
		if err != nil {
			return fromRepoErr(err)
		}
		after := before
		after.Title = in.Title
		after.Address = in.Address
		after.MapsURL = in.MapsURL
		after.ImageURL = in.ImageURL
		after.UpdatedAt = u.clock.Now()
		if err := r.Events().Update(ctx, after); err != nil {
			return fromRepoErr(err)
		}
		out = after
		return u.audit(ctx, r, actor, model.AuditActionUpdate, model.AuditResourceEvent, id, before, after)
	})
	if err != nil {
		return model.Event{}, err
	}
	return out, nil
}

func (u *AdminCatalogUsecase) DeleteEvent(ctx context.Context, actor string, id string) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Events().FindByID(ctx, id)
		if err != nil {
			return fromRepoErr(err)
		}
		if err := r.Events().Delete(ctx, id); err != nil {
			return fromRepoErr(err)
		}
		return u.audit(ctx, r, actor, model.AuditActionDelete, model.AuditResourceEvent, id, before, nil)
	})
}

func normalizeEvent(in EventInput) (EventInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Address = strings.TrimSpace(in.Address)
	in.MapsURL = strings.TrimSpace(in.MapsURL)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	if err := validator.First(
		validator.Required("title", in.Title),
		validator.MaxLen("title", in.Title, 255),
		validator.MaxLen("address", in.Address, 255),
		validator.OptionalURL("maps_url", in.MapsURL),
		validator.OptionalURL("image_url", in.ImageURL),
	); err != nil {
		return in, badRequest(err)
	}
	return in, nil
}

// =====================
// audit
// =====================

// before/after は nil ならログ上は空文字
func (u *AdminCatalogUsecase) audit(
	ctx context.Context,
	r repo.TxRepos,
	actor string,
	action model.AuditAction,
	resource model.AuditResourceType,
	id string,
	before, after interface{},
) error {
	log := model.AuditLog{
		Actor:        actor,
		Action:       action,
		ResourceType: resource,
		ResourceID:   id,
		BeforeJSON:   toJSON(before),
		AfterJSON:    toJSON(after),
		CreatedAt:    u.clock.Now(),
	}
	if err := r.AuditLogs().Create(ctx, log); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func toJSON(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
