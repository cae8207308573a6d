package services_test

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/heavymachinery/backend/models"
	"github.com/heavymachinery/backend/repository"
	"github.com/heavymachinery/backend/services"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeCatalog struct {
	products  []models.Product
	findCalls int
}

func (f *fakeCatalog) FindByID(_ context.Context, id string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCatalog) Find(_ context.Context, filter bson.M, _ *options.FindOptions) ([]models.Product, error) {
	f.findCalls++
	out := []models.Product{}
	for _, p := range f.products {
		if brand, ok := filter["brand"]; ok && p.Brand != brand {
			continue
		}
		if category, ok := filter["category"]; ok && p.Category != category {
			continue
		}
		if excluded, ok := filter["_id"].(bson.M); ok {
			if ne, ok := excluded["$ne"]; ok && p.ID == ne {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) Search(_ context.Context, _ string) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeCatalog) TopTrending(_ context.Context, limit int64) ([]models.Product, error) {
	f.findCalls++
	out := append([]models.Product(nil), f.products...)
	sort.Slice(out, func(i, j int) bool { return out[i].TrendingScore > out[j].TrendingScore })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCatalog) Insert(_ context.Context, product *models.Product) error {
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeCatalog) Update(_ context.Context, id string, _ bson.M) error {
	for _, p := range f.products {
		if p.ID == id {
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCatalog) Delete(_ context.Context, id string) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeOfferStore struct {
	offers    []models.Offer
	listCalls int
}

func (f *fakeOfferStore) Insert(_ context.Context, offer *models.Offer) error {
	f.offers = append(f.offers, *offer)
	return nil
}

func (f *fakeOfferStore) FindAll(_ context.Context) ([]models.Offer, error) {
	f.listCalls++
	return f.offers, nil
}

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{products: []models.Product{
		{ID: "p1", Name: "Hydraulic Pump", Brand: "CAT", Category: "Hydraulics", Stock: 3, TrendingScore: 10},
		{ID: "p2", Name: "Oil Seal", Brand: "CAT", Category: "Hydraulics", Stock: 0, TrendingScore: 25},
		{ID: "p3", Name: "Track Roller", Brand: "Komatsu", Category: "Undercarriage", Stock: 7, TrendingScore: 5},
	}}
}

func TestListProducts_AvailabilityDerivedFromStock(t *testing.T) {
	svc := services.NewCatalogService(sampleCatalog(), &fakeOfferStore{}, newMemKV())

	products, svcErr := svc.ListProducts(context.Background(), "", "")
	assert.Nil(t, svcErr)
	assert.Len(t, products, 3)

	byID := map[string]models.Product{}
	for _, p := range products {
		byID[p.ID] = p
	}
	assert.True(t, byID["p1"].Available)
	assert.False(t, byID["p2"].Available)
}

func TestListProducts_BrandFilter(t *testing.T) {
	svc := services.NewCatalogService(sampleCatalog(), &fakeOfferStore{}, newMemKV())

	products, svcErr := svc.ListProducts(context.Background(), "Komatsu", "")
	assert.Nil(t, svcErr)
	assert.Len(t, products, 1)
	assert.Equal(t, "p3", products[0].ID)
}

func TestSimilarProducts_SameCategoryAndBrandExcludingSelf(t *testing.T) {
	svc := services.NewCatalogService(sampleCatalog(), &fakeOfferStore{}, newMemKV())

	similar, svcErr := svc.SimilarProducts(context.Background(), "p1")
	assert.Nil(t, svcErr)
	assert.Len(t, similar, 1)
	assert.Equal(t, "p2", similar[0].ID)
}

func TestSimilarProducts_UnknownProduct(t *testing.T) {
	svc := services.NewCatalogService(sampleCatalog(), &fakeOfferStore{}, newMemKV())

	_, svcErr := svc.SimilarProducts(context.Background(), "nope")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestTrending_SecondCallServedFromCache(t *testing.T) {
	catalog := sampleCatalog()
	svc := services.NewCatalogService(catalog, &fakeOfferStore{}, newMemKV())

	first, svcErr := svc.Trending(context.Background())
	assert.Nil(t, svcErr)

	var products []models.Product
	assert.NoError(t, json.Unmarshal(first, &products))
	assert.Equal(t, "p2", products[0].ID)

	loadsAfterFirst := catalog.findCalls
	second, svcErr := svc.Trending(context.Background())
	assert.Nil(t, svcErr)
	assert.Equal(t, first, second)
	assert.Equal(t, loadsAfterFirst, catalog.findCalls)
}

func TestOffers_CachedList(t *testing.T) {
	offers := &fakeOfferStore{offers: []models.Offer{{ID: "of1", ProductID: "p1", Discount: 15}}}
	svc := services.NewCatalogService(sampleCatalog(), offers, newMemKV())

	first, svcErr := svc.Offers(context.Background())
	assert.Nil(t, svcErr)
	second, svcErr := svc.Offers(context.Background())
	assert.Nil(t, svcErr)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, offers.listCalls)
}

func TestAddOffer_UnknownProduct(t *testing.T) {
	svc := services.NewCatalogService(sampleCatalog(), &fakeOfferStore{}, newMemKV())

	_, svcErr := svc.AddOffer(context.Background(), &services.AddOfferRequest{
		ProductID: "nope",
		Discount:  10,
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestUpdateProduct_ProtectedFieldsStripped(t *testing.T) {
	svc := services.NewCatalogService(sampleCatalog(), &fakeOfferStore{}, newMemKV())

	svcErr := svc.UpdateProduct(context.Background(), "p1", map[string]interface{}{
		"trending_score": 999,
		"_id":            "hijack",
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	svcErr = svc.UpdateProduct(context.Background(), "p1", map[string]interface{}{"price": 42.5})
	assert.Nil(t, svcErr)
}
