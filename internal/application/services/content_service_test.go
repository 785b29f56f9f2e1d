package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/mocks"
)

type contentFixture struct {
	svc       *impl.ContentService
	props     *mocks.PropertyServiceMock
	store     *mocks.ImageStoreMock
	rooms     *mocks.ChildRepositoryMock[property.Room]
	amenities *mocks.ChildRepositoryMock[property.Amenity]
	gallery   *mocks.ChildRepositoryMock[property.GalleryImage]
}

func newContentFixture() *contentFixture {
	f := &contentFixture{
		props:     &mocks.PropertyServiceMock{},
		store:     &mocks.ImageStoreMock{},
		rooms:     &mocks.ChildRepositoryMock[property.Room]{},
		amenities: &mocks.ChildRepositoryMock[property.Amenity]{},
		gallery:   &mocks.ChildRepositoryMock[property.GalleryImage]{},
	}
	repos := impl.ContentRepos{
		Rooms:        f.rooms,
		Amenities:    f.amenities,
		Testimonials: &mocks.ChildRepositoryMock[property.Testimonial]{},
		Gallery:      f.gallery,
	}
	f.svc = impl.NewContentService(f.props, repos, impl.NewImageService(f.store, "root", 0, nil), nil)
	return f
}

func notOwner(ctx context.Context, ownerID, id uuid.UUID) (*property.Property, error) {
	return nil, property.NotOwned("property")
}

func TestAddRoom(t *testing.T) {
	f := newContentFixture()
	propertyID := uuid.New()

	room, err := f.svc.AddRoom(context.Background(), uuid.New(), propertyID, &property.RoomRequest{
		Type: " Deluxe ", PriceLKR: 12000, Capacity: 2, Features: "AC, , Balcony,WiFi",
	}, pngUpload("room.png"))
	require.NoError(t, err)
	assert.Equal(t, propertyID, room.PropertyID)
	assert.Equal(t, "Deluxe", room.Type)
	assert.Equal(t, []string{"AC", "Balcony", "WiFi"}, []string(room.Features))
	require.NotNil(t, room.Image)
	assert.Contains(t, *room.Image, "root/rooms/")
}

func TestAddRoom_RequiredFields(t *testing.T) {
	f := newContentFixture()
	for _, req := range []*property.RoomRequest{
		{PriceLKR: 1, Capacity: 1},
		{Type: "x", Capacity: 1},
		{Type: "x", PriceLKR: 1},
	} {
		_, err := f.svc.AddRoom(context.Background(), uuid.New(), uuid.New(), req, nil)
		assert.ErrorIs(t, err, property.ErrRoomFields)
	}
}

func TestAddRoom_CreateFailureRemovesUpload(t *testing.T) {
	f := newContentFixture()
	f.rooms.CreateFn = func(ctx context.Context, item *property.Room) error { return errors.New("insert failed") }

	_, err := f.svc.AddRoom(context.Background(), uuid.New(), uuid.New(), &property.RoomRequest{Type: "x", PriceLKR: 1, Capacity: 1}, pngUpload("r.png"))
	require.Error(t, err)
	assert.Equal(t, f.store.Uploaded, f.store.Deleted)
}

func TestUpdateRoom_ReplacesImage(t *testing.T) {
	f := newContentFixture()
	old := mocks.ImageStoreBaseURL + "root/rooms/old.png"
	existing := &property.Room{ID: uuid.New(), PropertyID: uuid.New(), Type: "Old", Image: &old}
	f.rooms.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*property.Room, error) { return existing, nil }

	room, err := f.svc.UpdateRoom(context.Background(), uuid.New(), existing.ID, &property.RoomRequest{Type: "New", PriceLKR: 5, Capacity: 3}, pngUpload("n.png"))
	require.NoError(t, err)
	assert.Equal(t, "New", room.Type)
	assert.Equal(t, []string{old}, f.store.Deleted)
}

func TestUpdateRoom_SaveFailureRemovesNewImage(t *testing.T) {
	f := newContentFixture()
	old := mocks.ImageStoreBaseURL + "root/rooms/old.png"
	existing := &property.Room{ID: uuid.New(), PropertyID: uuid.New(), Type: "Old", Image: &old}
	f.rooms.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*property.Room, error) { return existing, nil }
	f.rooms.UpdateFn = func(ctx context.Context, r *property.Room) error { return errors.New("db down") }

	_, err := f.svc.UpdateRoom(context.Background(), uuid.New(), existing.ID, &property.RoomRequest{Type: "New", PriceLKR: 5, Capacity: 3}, pngUpload("n.png"))
	require.Error(t, err)
	require.Len(t, f.store.Uploaded, 1)
	assert.Equal(t, f.store.Uploaded, f.store.Deleted)
}

func TestUpdateRoom_OtherOwner(t *testing.T) {
	f := newContentFixture()
	f.props.GetOwnedPropertyFn = notOwner
	f.rooms.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*property.Room, error) {
		return &property.Room{ID: id, PropertyID: uuid.New()}, nil
	}

	_, err := f.svc.UpdateRoom(context.Background(), uuid.New(), uuid.New(), &property.RoomRequest{Type: "x", PriceLKR: 1, Capacity: 1}, nil)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "You don't have permission to modify this room.", domain.Message(err, ""))
}

func TestAmenityLifecycle(t *testing.T) {
	f := newContentFixture()
	ownerID, propertyID := uuid.New(), uuid.New()

	_, err := f.svc.AddAmenity(context.Background(), ownerID, propertyID, &property.AmenityRequest{Name: "  "})
	assert.ErrorIs(t, err, property.ErrAmenityName)

	a, err := f.svc.AddAmenity(context.Background(), ownerID, propertyID, &property.AmenityRequest{Name: "Pool", Icon: "waves"})
	require.NoError(t, err)
	require.NotNil(t, a.Icon)
	assert.Equal(t, "waves", *a.Icon)
	assert.Nil(t, a.Description)

	f.amenities.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*property.Amenity, error) { return a, nil }
	deleted := false
	f.amenities.DeleteFn = func(ctx context.Context, id uuid.UUID) error { deleted = true; return nil }
	require.NoError(t, f.svc.DeleteAmenity(context.Background(), ownerID, a.ID))
	assert.True(t, deleted)
}

func TestAddTestimonial_RequiresBody(t *testing.T) {
	f := newContentFixture()
	_, err := f.svc.AddTestimonial(context.Background(), uuid.New(), uuid.New(), &property.TestimonialRequest{Content: "Lovely"})
	assert.ErrorIs(t, err, property.ErrTestimonialBody)

	tm, err := f.svc.AddTestimonial(context.Background(), uuid.New(), uuid.New(), &property.TestimonialRequest{Content: "Lovely", Author: "Ana", Location: "Kandy"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", tm.Author)
}

func TestGalleryImage(t *testing.T) {
	f := newContentFixture()
	ownerID, propertyID := uuid.New(), uuid.New()

	_, err := f.svc.AddGalleryImage(context.Background(), ownerID, propertyID, nil, "")
	assert.ErrorIs(t, err, impl.ErrNoFile)

	g, err := f.svc.AddGalleryImage(context.Background(), ownerID, propertyID, pngUpload("g.png"), "Sunset")
	require.NoError(t, err)
	require.NotNil(t, g.Alt)
	assert.Equal(t, "Sunset", *g.Alt)

	f.gallery.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*property.GalleryImage, error) { return g, nil }
	require.NoError(t, f.svc.DeleteGalleryImage(context.Background(), ownerID, g.ID))
	assert.Equal(t, []string{g.URL}, f.store.Deleted)
}

func TestDeleteGalleryImage_OtherOwnerKeepsImage(t *testing.T) {
	f := newContentFixture()
	f.props.GetOwnedPropertyFn = notOwner
	url := mocks.ImageStoreBaseURL + "root/gallery/x.png"
	f.gallery.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*property.GalleryImage, error) {
		return &property.GalleryImage{ID: id, PropertyID: uuid.New(), URL: url}, nil
	}

	err := f.svc.DeleteGalleryImage(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.store.Deleted)
}
