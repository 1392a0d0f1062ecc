package item

import (
	"context"
	"sort"
	"testing"
	"time"

	"FoodWise-Backend/domain"
	"FoodWise-Backend/entities"
	"FoodWise-Backend/pkg/prediction"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var serviceNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeItemRepo struct {
	items map[string]*entities.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string]*entities.Item{}}
}

func (r *fakeItemRepo) AddItem(_ context.Context, item *entities.Item) error {
	stored := *item
	r.items[item.ID.String()] = &stored
	return nil
}

func (r *fakeItemRepo) GetItemByID(_ context.Context, id string) (*entities.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *item
	return &found, nil
}

func (r *fakeItemRepo) UpdateItem(_ context.Context, item *entities.Item) error {
	stored := *item
	r.items[item.ID.String()] = &stored
	return nil
}

func (r *fakeItemRepo) DeleteItem(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) GetItemsByOwner(_ context.Context, userID string) ([]*entities.Item, error) {
	var items []*entities.Item
	for _, item := range r.items {
		if item.UserID.String() == userID {
			found := *item
			items = append(items, &found)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ExpiryDate.Before(items[j].ExpiryDate)
	})
	return items, nil
}

func (r *fakeItemRepo) GetActiveItemsByOwner(ctx context.Context, userID string) ([]*entities.Item, error) {
	all, _ := r.GetItemsByOwner(ctx, userID)
	var items []*entities.Item
	for _, item := range all {
		if !item.IsConsumed && !item.IsWasted {
			items = append(items, item)
		}
	}
	return items, nil
}

type fakePredictor struct {
	calls   int
	lastReq prediction.Request
	days    int
	fail    bool
}

func (f *fakePredictor) Predict(_ context.Context, req prediction.Request, now time.Time) prediction.Result {
	f.calls++
	f.lastReq = req
	if f.fail {
		return prediction.Result{
			ExpiryDate:    now.AddDate(0, 0, prediction.FallbackDays),
			PredictedDays: prediction.FallbackDays,
			Source:        prediction.SourceFallback,
		}
	}
	basis := req.PurchaseDate
	if basis.IsZero() {
		basis = now
	}
	return prediction.Result{
		ExpiryDate:    basis.AddDate(0, 0, f.days),
		PredictedDays: f.days,
		Source:        prediction.SourcePrediction,
	}
}

func newTestService(repo *fakeItemRepo, predictor *fakePredictor) *itemService {
	return &itemService{
		itemRepository: repo,
		predictor:      predictor,
		clock:          func() time.Time { return serviceNow },
	}
}

func TestAddItemAppliesDefaults(t *testing.T) {
	repo := newFakeItemRepo()
	predictor := &fakePredictor{days: 10}
	service := newTestService(repo, predictor)
	ownerID := uuid.New().String()

	res, err := service.AddItem(context.Background(), domain.AddItemRequest{
		Name:       "Milk",
		ExpiryDate: "2024-01-10",
	}, ownerID)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if res.Category != domain.DefaultCategory {
		t.Errorf("Category = %q, want %q", res.Category, domain.DefaultCategory)
	}
	if res.Quantity != 1 {
		t.Errorf("Quantity = %v, want 1", res.Quantity)
	}
	if res.Unit != "item" {
		t.Errorf("Unit = %q, want %q", res.Unit, "item")
	}
	if res.StorageCondition != "fridge" {
		t.Errorf("StorageCondition = %q, want %q", res.StorageCondition, "fridge")
	}
	if res.ItemCondition != "fresh" {
		t.Errorf("ItemCondition = %q, want %q", res.ItemCondition, "fresh")
	}
	if res.ExpirySource != "manual" {
		t.Errorf("ExpirySource = %q, want %q", res.ExpirySource, "manual")
	}
	if predictor.calls != 0 {
		t.Errorf("prediction called %d times for an explicit expiry date", predictor.calls)
	}
}

func TestAddItemPredictsMissingExpiry(t *testing.T) {
	repo := newFakeItemRepo()
	predictor := &fakePredictor{days: 10}
	service := newTestService(repo, predictor)
	ownerID := uuid.New().String()

	res, err := service.AddItem(context.Background(), domain.AddItemRequest{
		Name:         "Milk",
		PurchaseDate: "2024-01-01",
	}, ownerID)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if predictor.calls != 1 {
		t.Fatalf("prediction called %d times, want 1", predictor.calls)
	}
	if predictor.lastReq.ProductName != "Milk" {
		t.Errorf("predicted product = %q, want %q", predictor.lastReq.ProductName, "Milk")
	}
	want := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	if !res.ExpiryDate.Equal(want) {
		t.Errorf("ExpiryDate = %v, want %v", res.ExpiryDate, want)
	}
	if res.ExpirySource != prediction.SourcePrediction {
		t.Errorf("ExpirySource = %q, want %q", res.ExpirySource, prediction.SourcePrediction)
	}
}

func TestAddItemFallbackStillYieldsExpiryDate(t *testing.T) {
	repo := newFakeItemRepo()
	predictor := &fakePredictor{fail: true}
	service := newTestService(repo, predictor)
	ownerID := uuid.New().String()

	res, err := service.AddItem(context.Background(), domain.AddItemRequest{Name: "Milk"}, ownerID)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if res.ExpiryDate.IsZero() {
		t.Fatal("expected a fallback expiry date, got zero value")
	}
	want := serviceNow.AddDate(0, 0, prediction.FallbackDays)
	if !res.ExpiryDate.Equal(want) {
		t.Errorf("ExpiryDate = %v, want %v", res.ExpiryDate, want)
	}
	if res.ExpirySource != prediction.SourceFallback {
		t.Errorf("ExpirySource = %q, want %q", res.ExpirySource, prediction.SourceFallback)
	}
}

func TestAddItemRejectsInvalidEnums(t *testing.T) {
	repo := newFakeItemRepo()
	service := newTestService(repo, &fakePredictor{})
	ownerID := uuid.New().String()

	_, err := service.AddItem(context.Background(), domain.AddItemRequest{
		Name: "Milk", ExpiryDate: "2024-01-10", Unit: "barrel",
	}, ownerID)
	if err != domain.ErrInvalidUnit {
		t.Errorf("err = %v, want %v", err, domain.ErrInvalidUnit)
	}

	_, err = service.AddItem(context.Background(), domain.AddItemRequest{
		Name: "Milk", ExpiryDate: "2024-01-10", StorageCondition: "attic",
	}, ownerID)
	if err != domain.ErrInvalidStorageCondition {
		t.Errorf("err = %v, want %v", err, domain.ErrInvalidStorageCondition)
	}

	_, err = service.AddItem(context.Background(), domain.AddItemRequest{
		Name: "Milk", ExpiryDate: "2024-01-10", ItemCondition: "cursed",
	}, ownerID)
	if err != domain.ErrInvalidItemCondition {
		t.Errorf("err = %v, want %v", err, domain.ErrInvalidItemCondition)
	}
}

func addItem(t *testing.T, service *itemService, ownerID, name, expiryDate string) domain.ItemResponse {
	t.Helper()
	res, err := service.AddItem(context.Background(), domain.AddItemRequest{
		Name:       name,
		ExpiryDate: expiryDate,
	}, ownerID)
	if err != nil {
		t.Fatalf("AddItem(%s): %v", name, err)
	}
	return res
}

func TestUpdateQuantityOnlyDoesNotRePredict(t *testing.T) {
	repo := newFakeItemRepo()
	predictor := &fakePredictor{days: 10}
	service := newTestService(repo, predictor)
	ownerID := uuid.New().String()

	created := addItem(t, service, ownerID, "Milk", "2024-01-10")

	updated, err := service.UpdateItem(context.Background(), created.ID, domain.UpdateItemRequest{
		Quantity: 3,
	}, ownerID)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if predictor.calls != 0 {
		t.Errorf("prediction called %d times for a quantity-only update", predictor.calls)
	}
	if !updated.ExpiryDate.Equal(created.ExpiryDate) {
		t.Errorf("ExpiryDate changed from %v to %v", created.ExpiryDate, updated.ExpiryDate)
	}
	if updated.Quantity != 3 {
		t.Errorf("Quantity = %v, want 3", updated.Quantity)
	}
}

func TestUpdateNameChangeRePredicts(t *testing.T) {
	repo := newFakeItemRepo()
	predictor := &fakePredictor{days: 20}
	service := newTestService(repo, predictor)
	ownerID := uuid.New().String()

	created := addItem(t, service, ownerID, "Milk", "2024-01-10")

	updated, err := service.UpdateItem(context.Background(), created.ID, domain.UpdateItemRequest{
		Name: "Cheese",
	}, ownerID)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if predictor.calls != 1 {
		t.Fatalf("prediction called %d times, want 1", predictor.calls)
	}
	if predictor.lastReq.ProductName != "Cheese" {
		t.Errorf("predicted product = %q, want %q", predictor.lastReq.ProductName, "Cheese")
	}
	if updated.ExpirySource != prediction.SourcePrediction {
		t.Errorf("ExpirySource = %q, want %q", updated.ExpirySource, prediction.SourcePrediction)
	}
	if updated.ExpiryDate.Equal(created.ExpiryDate) {
		t.Error("expected expiry date to change after re-prediction")
	}
}

func TestUpdateRePredictionFailureKeepsPreviousExpiry(t *testing.T) {
	repo := newFakeItemRepo()
	predictor := &fakePredictor{days: 20}
	service := newTestService(repo, predictor)
	ownerID := uuid.New().String()

	created := addItem(t, service, ownerID, "Milk", "2024-01-10")

	predictor.fail = true
	updated, err := service.UpdateItem(context.Background(), created.ID, domain.UpdateItemRequest{
		Name: "Cheese",
	}, ownerID)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	// Distinct from the add path: a failed re-prediction keeps the item's
	// previous expiry date instead of now+7.
	if !updated.ExpiryDate.Equal(created.ExpiryDate) {
		t.Errorf("ExpiryDate = %v, want previous %v", updated.ExpiryDate, created.ExpiryDate)
	}
	if updated.Name != "Cheese" {
		t.Errorf("Name = %q, want %q", updated.Name, "Cheese")
	}
}

func TestUpdateExplicitExpiryWins(t *testing.T) {
	repo := newFakeItemRepo()
	predictor := &fakePredictor{days: 20}
	service := newTestService(repo, predictor)
	ownerID := uuid.New().String()

	created := addItem(t, service, ownerID, "Milk", "2024-01-10")

	updated, err := service.UpdateItem(context.Background(), created.ID, domain.UpdateItemRequest{
		Name:       "Cheese",
		ExpiryDate: "2024-02-15",
	}, ownerID)
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if predictor.calls != 0 {
		t.Errorf("prediction called %d times when an explicit expiry was supplied", predictor.calls)
	}
	want := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	if !updated.ExpiryDate.Equal(want) {
		t.Errorf("ExpiryDate = %v, want %v", updated.ExpiryDate, want)
	}
	if updated.ExpirySource != "manual" {
		t.Errorf("ExpirySource = %q, want %q", updated.ExpirySource, "manual")
	}
}

func TestCrossOwnerAccessReportsNotFound(t *testing.T) {
	repo := newFakeItemRepo()
	service := newTestService(repo, &fakePredictor{})
	ownerID := uuid.New().String()
	otherID := uuid.New().String()

	created := addItem(t, service, ownerID, "Milk", "2024-01-10")

	if _, err := service.GetItemByID(context.Background(), created.ID, otherID); err != domain.ErrItemNotFound {
		t.Errorf("GetItemByID err = %v, want %v", err, domain.ErrItemNotFound)
	}
	if _, err := service.UpdateItem(context.Background(), created.ID, domain.UpdateItemRequest{Quantity: 2}, otherID); err != domain.ErrItemNotFound {
		t.Errorf("UpdateItem err = %v, want %v", err, domain.ErrItemNotFound)
	}
	if err := service.DeleteItem(context.Background(), created.ID, otherID); err != domain.ErrItemNotFound {
		t.Errorf("DeleteItem err = %v, want %v", err, domain.ErrItemNotFound)
	}

	// The record must still be readable by its owner.
	if _, err := service.GetItemByID(context.Background(), created.ID, ownerID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
}

func TestGetItemsFiltersByStatus(t *testing.T) {
	repo := newFakeItemRepo()
	service := newTestService(repo, &fakePredictor{})
	ownerID := uuid.New().String()

	addItem(t, service, ownerID, "Old Milk", "2023-12-20")
	addItem(t, service, ownerID, "Bread", "2024-01-03")
	addItem(t, service, ownerID, "Rice", "2024-06-01")

	expired, count, err := service.GetItems(context.Background(), ownerID, "Expired", 1, 20)
	if err != nil {
		t.Fatalf("GetItems: %v", err)
	}
	if count != 1 || len(expired) != 1 || expired[0].Name != "Old Milk" {
		t.Errorf("Expired filter returned %v (count %d)", expired, count)
	}

	all, count, err := service.GetItems(context.Background(), ownerID, "all", 1, 20)
	if err != nil {
		t.Fatalf("GetItems: %v", err)
	}
	if count != 3 || len(all) != 3 {
		t.Errorf("all filter returned %d items (count %d), want 3", len(all), count)
	}
}

func TestGetExpiringItemsHonorsWindow(t *testing.T) {
	repo := newFakeItemRepo()
	service := newTestService(repo, &fakePredictor{})
	ownerID := uuid.New().String()

	addItem(t, service, ownerID, "Bread", "2024-01-03") // 2 days out
	addItem(t, service, ownerID, "Curd", "2024-01-06")  // 5 days out
	addItem(t, service, ownerID, "Rice", "2024-06-01")

	narrow, err := service.GetExpiringItems(context.Background(), ownerID, 3)
	if err != nil {
		t.Fatalf("GetExpiringItems: %v", err)
	}
	if len(narrow) != 1 || narrow[0].Name != "Bread" {
		t.Errorf("window 3 returned %v, want [Bread]", narrow)
	}

	wide, err := service.GetExpiringItems(context.Background(), ownerID, 7)
	if err != nil {
		t.Fatalf("GetExpiringItems: %v", err)
	}
	if len(wide) != 2 {
		t.Errorf("window 7 returned %d items, want 2", len(wide))
	}
}

func TestGetDashboard(t *testing.T) {
	repo := newFakeItemRepo()
	service := newTestService(repo, &fakePredictor{})
	ownerID := uuid.New().String()

	addItem(t, service, ownerID, "Old Milk", "2023-12-20")
	addItem(t, service, ownerID, "Bread", "2024-01-03")
	addItem(t, service, ownerID, "Rice", "2024-06-01")
	consumed := addItem(t, service, ownerID, "Eaten Apple", "2024-01-05")
	if err := service.MarkConsumed(context.Background(), consumed.ID, ownerID); err != nil {
		t.Fatalf("MarkConsumed: %v", err)
	}

	dashboard, err := service.GetDashboard(context.Background(), ownerID, 7)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if dashboard.TotalItems != 3 {
		t.Errorf("TotalItems = %d, want 3 (consumed items excluded)", dashboard.TotalItems)
	}
	if dashboard.ConsumedItems != 1 {
		t.Errorf("ConsumedItems = %d, want 1", dashboard.ConsumedItems)
	}
	if len(dashboard.ExpiredItems) != 1 || dashboard.ExpiredItems[0].Name != "Old Milk" {
		t.Errorf("ExpiredItems = %v", dashboard.ExpiredItems)
	}
	if len(dashboard.ExpiringSoon) != 1 || dashboard.ExpiringSoon[0].Name != "Bread" {
		t.Errorf("ExpiringSoon = %v", dashboard.ExpiringSoon)
	}
	if dashboard.GoodItems != 1 {
		t.Errorf("GoodItems = %d, want 1", dashboard.GoodItems)
	}
}
