package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestCoordinator() (*Coordinator, *Store) {
	store := New(NewMemoryBackend(), 60)
	return NewCoordinator(store), store
}

func TestInvalidateResourcePurgesListAndEntityKeys(t *testing.T) {
	ctx := context.Background()
	coordinator, store := newTestCoordinator()

	listKey := ListKey(ResourceCourses, ListFilter{Status: "ACTIVE"}, SortSpec{}, 1, 20)
	store.Set(ctx, listKey, "page", 0)
	store.Set(ctx, EntityKey(ResourceCourses, 5), "detail", 0)

	coordinator.InvalidateResource(ctx, ResourceCourses)

	_, ok := store.Get(ctx, listKey)
	assert.False(t, ok)
	_, ok = store.Get(ctx, EntityKey(ResourceCourses, 5))
	assert.False(t, ok)
}

func TestInvalidateEnrollmentsFansOutToProgress(t *testing.T) {
	ctx := context.Background()
	coordinator, store := newTestCoordinator()

	progressKey := UserListKey(ResourceProgress, 7, ListFilter{CourseID: 3}, SortSpec{}, 0, 0)
	store.Set(ctx, EntityKey(ResourceEnrollments, 1), "enrollment", 0)
	store.Set(ctx, progressKey, "progress", 0)
	store.Set(ctx, EntityKey(ResourceDashboard, 0), "summary", 0)

	coordinator.InvalidateEntity(ctx, ResourceEnrollments, 1)

	for _, key := range []string{EntityKey(ResourceEnrollments, 1), progressKey, EntityKey(ResourceDashboard, 0)} {
		_, ok := store.Get(ctx, key)
		assert.False(t, ok, key)
	}
}

func TestInvalidateLeavesUnrelatedResources(t *testing.T) {
	ctx := context.Background()
	coordinator, store := newTestCoordinator()

	store.Set(ctx, EntityKey(ResourceCourses, 1), "course", 0)
	store.Set(ctx, EntityKey(ResourceCertificates, 1), "certificate", 0)

	coordinator.InvalidateResource(ctx, ResourceCertificates)

	_, ok := store.Get(ctx, EntityKey(ResourceCourses, 1))
	assert.True(t, ok)
	_, ok = store.Get(ctx, EntityKey(ResourceCertificates, 1))
	assert.False(t, ok)
}

func TestInvalidateUnknownResourcePurgesOwnKeyspace(t *testing.T) {
	ctx := context.Background()
	coordinator, store := newTestCoordinator()

	store.Set(ctx, "sessions:id:1", "v", 0)
	coordinator.InvalidateResource(ctx, "sessions")

	_, ok := store.Get(ctx, "sessions:id:1")
	assert.False(t, ok)
}

func TestCoordinatorOverDisabledStore(t *testing.T) {
	ctx := context.Background()
	coordinator := NewCoordinator(Disabled())

	// Must be a no-op rather than a panic
	coordinator.InvalidateResource(ctx, ResourceCourses)
	coordinator.InvalidateEntity(ctx, ResourceEnrollments, 1)
}
