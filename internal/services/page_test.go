package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cms-system/internal/dto"
	"cms-system/internal/entities"
	apperrors "cms-system/pkg/errors"
	"cms-system/pkg/types"
)

// fakePageRepo - страницы в памяти, индекс по id и slug.
type fakePageRepo struct {
	pages  map[uint64]*entities.Page
	nextID uint64
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{pages: make(map[uint64]*entities.Page), nextID: 1}
}

func (f *fakePageRepo) GetPages(ctx context.Context, filter types.Filter) ([]entities.Page, uint64, error) {
	var list []entities.Page
	for _, p := range f.pages {
		list = append(list, *p)
	}
	return list, uint64(len(list)), nil
}

func (f *fakePageRepo) FindPageByID(ctx context.Context, id uint64) (*entities.Page, error) {
	p, ok := f.pages[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePageRepo) FindPageBySlug(ctx context.Context, slug string) (*entities.Page, error) {
	for _, p := range f.pages {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakePageRepo) CreatePage(ctx context.Context, page entities.Page) (uint64, error) {
	id := f.nextID
	f.nextID++
	page.ID = id
	now := time.Now()
	page.CreatedAt = &now
	f.pages[id] = &page
	return id, nil
}

func (f *fakePageRepo) UpdatePage(ctx context.Context, id uint64, page entities.Page) error {
	if _, ok := f.pages[id]; !ok {
		return apperrors.ErrNotFound
	}
	page.ID = id
	f.pages[id] = &page
	return nil
}

func (f *fakePageRepo) SetPageStatus(ctx context.Context, id uint64, status string, publishedAt *time.Time) error {
	p, ok := f.pages[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	p.Status = status
	p.PublishedAt = publishedAt
	return nil
}

func (f *fakePageRepo) DeletePage(ctx context.Context, id uint64) error {
	if _, ok := f.pages[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.pages, id)
	return nil
}

func newTestPageService(repo *fakePageRepo) PageServiceInterface {
	return NewPageService(repo, zap.NewNop())
}

func TestCreatePage_DefaultsToDraft(t *testing.T) {
	svc := newTestPageService(newFakePageRepo())

	page, err := svc.CreatePage(context.Background(), dto.CreatePageDTO{
		Title: "Главная",
		Slug:  "home",
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, entities.PageStatusDraft, page.Status)
	assert.Nil(t, page.PublishedAt)
	assert.Equal(t, uint64(1), page.AuthorID)
}

func TestCreatePage_PublishedSetsPublishedAt(t *testing.T) {
	svc := newTestPageService(newFakePageRepo())

	page, err := svc.CreatePage(context.Background(), dto.CreatePageDTO{
		Title:  "Главная",
		Slug:   "home",
		Status: entities.PageStatusPublished,
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, entities.PageStatusPublished, page.Status)
	require.NotNil(t, page.PublishedAt)
}

func TestCreatePage_DuplicateSlugConflict(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestPageService(repo)

	_, err := svc.CreatePage(context.Background(), dto.CreatePageDTO{Title: "Главная", Slug: "home"}, 1)
	require.NoError(t, err)

	_, err = svc.CreatePage(context.Background(), dto.CreatePageDTO{Title: "Другая", Slug: "home"}, 1)
	require.Error(t, err)

	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestUpdatePage_PartialFields(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestPageService(repo)

	created, err := svc.CreatePage(context.Background(), dto.CreatePageDTO{
		Title:   "Главная",
		Slug:    "home",
		Content: "старый текст",
	}, 1)
	require.NoError(t, err)

	updated, err := svc.UpdatePage(context.Background(), created.ID, dto.UpdatePageDTO{
		Title: null.StringFrom("Главная страница"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Главная страница", updated.Title)
	assert.Equal(t, "home", updated.Slug, "непредставленные поля не меняются")
	assert.Equal(t, "старый текст", updated.Content)
}

func TestUpdatePage_SlugConflictWithOtherPage(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestPageService(repo)

	_, err := svc.CreatePage(context.Background(), dto.CreatePageDTO{Title: "Главная", Slug: "home"}, 1)
	require.NoError(t, err)
	about, err := svc.CreatePage(context.Background(), dto.CreatePageDTO{Title: "О нас", Slug: "about"}, 1)
	require.NoError(t, err)

	_, err = svc.UpdatePage(context.Background(), about.ID, dto.UpdatePageDTO{
		Slug: null.StringFrom("home"),
	})
	require.Error(t, err)

	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)

	// Свой собственный slug конфликтом не считается
	_, err = svc.UpdatePage(context.Background(), about.ID, dto.UpdatePageDTO{
		Slug: null.StringFrom("about"),
	})
	assert.NoError(t, err)
}

func TestPublishAndUnpublish(t *testing.T) {
	repo := newFakePageRepo()
	svc := newTestPageService(repo)

	created, err := svc.CreatePage(context.Background(), dto.CreatePageDTO{Title: "Главная", Slug: "home"}, 1)
	require.NoError(t, err)

	published, err := svc.PublishPage(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.PageStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	firstPublishedAt := *published.PublishedAt

	// Снятие с публикации сохраняет исходную дату публикации
	unpublished, err := svc.UnpublishPage(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.PageStatusDraft, unpublished.Status)
	require.NotNil(t, unpublished.PublishedAt)
	assert.Equal(t, firstPublishedAt, *unpublished.PublishedAt)

	// Повторная публикация не перетирает дату
	republished, err := svc.PublishPage(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, firstPublishedAt, *republished.PublishedAt)
}

func TestDeletePage_NotFound(t *testing.T) {
	svc := newTestPageService(newFakePageRepo())

	err := svc.DeletePage(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
