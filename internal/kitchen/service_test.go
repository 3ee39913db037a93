package kitchen

import (
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/radixdt3305/ghar-ka-kitchen/internal/apperror"
	"github.com/radixdt3305/ghar-ka-kitchen/internal/geo"
)

type fakeStorage struct {
	keys []string
}

func (s *fakeStorage) UploadFileHeader(ctx context.Context, key string, header *multipart.FileHeader) (string, error) {
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func newTestService() (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	return NewService(repo, nil), repo
}

func validInput() RegisterInput {
	return RegisterInput{
		Name: "Sharma Rasoi",
		Address: Address{
			Street: "14 MG Road",
			City:   "Delhi",
			State:  "Delhi",
			Pincode: "110001",
		},
		Lng:      77.2090,
		Lat:      28.6139,
		Cuisines: []string{"north_indian"},
	}
}

func TestRegisterStartsPending(t *testing.T) {
	svc, _ := newTestService()

	k, err := svc.Register(context.Background(), "cook-1", validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if k.Status != StatusPending {
		t.Errorf("expected status %q, got %q", StatusPending, k.Status)
	}
	if k.ID == "" {
		t.Error("expected a generated kitchen id")
	}
	if k.Location.Lng() != 77.2090 || k.Location.Lat() != 28.6139 {
		t.Errorf("location not preserved: %v", k.Location.Coordinates)
	}
}

func TestRegisterSecondKitchenConflicts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "cook-1", validInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(ctx, "cook-1", validInput())
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Errorf("expected conflict for second kitchen, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	noName := validInput()
	noName.Name = ""
	if _, err := svc.Register(ctx, "cook-1", noName); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}

	badLng := validInput()
	badLng.Lng = 200
	if _, err := svc.Register(ctx, "cook-2", badLng); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for lng 200, got %v", err)
	}

	badCuisine := validInput()
	badCuisine.Cuisines = []string{"martian"}
	if _, err := svc.Register(ctx, "cook-3", badCuisine); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for unknown cuisine, got %v", err)
	}
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	k, err := svc.Register(ctx, "cook-1", validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err = svc.Update(ctx, k.ID, "cook-2", validInput())
	if !apperror.IsKind(err, apperror.KindForbidden) {
		t.Errorf("expected forbidden for non-owner update, got %v", err)
	}
}

func TestUploadPhotos(t *testing.T) {
	repo := NewInMemoryRepository()
	store := &fakeStorage{}
	svc := NewService(repo, store)
	ctx := context.Background()

	k, err := svc.Register(ctx, "cook-1", validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	files := []*multipart.FileHeader{
		{Filename: "front.jpg"},
		{Filename: "plated.png"},
	}
	urls, err := svc.UploadPhotos(ctx, k.ID, "cook-1", files)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
	for _, key := range store.keys {
		if !strings.HasPrefix(key, "kitchens/"+k.ID+"/") {
			t.Errorf("key %q not scoped to the kitchen", key)
		}
	}

	got, err := repo.FindByID(ctx, k.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(got.Photos) != 2 {
		t.Errorf("expected photos persisted on the kitchen, got %d", len(got.Photos))
	}

	if _, err := svc.UploadPhotos(ctx, k.ID, "cook-2", files); !apperror.IsKind(err, apperror.KindForbidden) {
		t.Errorf("expected forbidden for non-owner upload, got %v", err)
	}
	if _, err := svc.UploadPhotos(ctx, k.ID, "cook-1", []*multipart.FileHeader{{Filename: "noext"}}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("expected validation error for missing extension, got %v", err)
	}
}

func TestDeactivateFreesCookSlot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	k, err := svc.Register(ctx, "cook-1", validInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := svc.Deactivate(ctx, k.ID, "cook-1"); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	// Soft delete frees the one-active-kitchen-per-cook slot.
	if _, err := svc.Register(ctx, "cook-1", validInput()); err != nil {
		t.Errorf("expected re-register after deactivate to succeed, got %v", err)
	}
}

func TestFindNearbySortsByDistance(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	center := geo.NewPoint(77.2090, 28.6139)

	seed := func(id string, lng, lat float64) {
		k := &Kitchen{
			ID:       id,
			CookID:   "cook-" + id,
			Name:     "Kitchen " + id,
			Location: geo.NewPoint(lng, lat),
			Status:   StatusApproved,
		}
		if err := repo.Create(ctx, k); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	seed("far", 77.30, 28.70)     // ~12km out
	seed("near", 77.21, 28.615)   // a few hundred meters
	seed("mid", 77.25, 28.64)     // ~5km out

	got, err := repo.FindNearby(ctx, center, 20000, 0)
	if err != nil {
		t.Fatalf("FindNearby failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 kitchens, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		prev := geo.Distance(center, got[i-1].Location)
		cur := geo.Distance(center, got[i].Location)
		if cur < prev {
			t.Errorf("kitchens not ordered by distance at index %d: %f < %f", i, cur, prev)
		}
	}

	// Tight radius keeps only the closest one.
	close, err := repo.FindNearby(ctx, center, 1000, 0)
	if err != nil {
		t.Fatalf("FindNearby failed: %v", err)
	}
	if len(close) != 1 || close[0].ID != "near" {
		t.Errorf("expected only the near kitchen within 1km, got %v", close)
	}
}

func TestFindNearbyHidesRejectedAndInactive(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	center := geo.NewPoint(77.2090, 28.6139)

	rejected := &Kitchen{CookID: "cook-1", Name: "Rejected", Location: center, Status: StatusRejected}
	if err := repo.Create(ctx, rejected); err != nil {
		t.Fatalf("seed rejected: %v", err)
	}

	pending := &Kitchen{CookID: "cook-2", Name: "Pending", Location: center, Status: StatusPending}
	if err := repo.Create(ctx, pending); err != nil {
		t.Fatalf("seed pending: %v", err)
	}
	if err := repo.Deactivate(ctx, pending.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	visible := &Kitchen{CookID: "cook-3", Name: "Visible", Location: center, Status: StatusPending}
	if err := repo.Create(ctx, visible); err != nil {
		t.Fatalf("seed visible: %v", err)
	}

	got, err := repo.FindNearby(ctx, center, 5000, 0)
	if err != nil {
		t.Fatalf("FindNearby failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != visible.ID {
		t.Errorf("expected only the active pending kitchen, got %d results", len(got))
	}
}
