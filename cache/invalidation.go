package cache

import "context"

// Resource names used for cache keys and invalidation fan-out.
const (
	ResourceCourses      = "courses"
	ResourceEnrollments  = "enrollments"
	ResourceProgress     = "progress"
	ResourceQuizzes      = "quizzes"
	ResourceQuizResults  = "quiz_results"
	ResourceAssignments  = "assignments"
	ResourceCertificates = "certificates"
	ResourceDashboard    = "dashboard"
)

// Coordinator maps a resource mutation to the set of cache key patterns
// that must be purged before the mutation is acknowledged. Purges are
// best-effort (the Store is fail-open) but always attempted
// synchronously on the write path, so a reader that starts after a
// mutation's response never sees pre-mutation cached data.
type Coordinator struct {
	store  *Store
	fanout map[string][]string
}

// NewCoordinator returns a Coordinator over store with the default
// fan-out table. A mutation on a resource purges its own keyspace plus
// every keyspace whose entries are derived from it; purging too much
// only costs a miss.
func NewCoordinator(store *Store) *Coordinator {
	return &Coordinator{
		store: store,
		fanout: map[string][]string{
			ResourceCourses: {
				ResourcePattern(ResourceCourses),
				ResourcePattern(ResourceDashboard),
			},
			ResourceEnrollments: {
				ResourcePattern(ResourceEnrollments),
				ResourcePattern(ResourceProgress),
				ResourcePattern(ResourceDashboard),
			},
			ResourceQuizzes: {
				ResourcePattern(ResourceQuizzes),
				ResourcePattern(ResourceDashboard),
			},
			ResourceQuizResults: {
				ResourcePattern(ResourceQuizResults),
				ResourcePattern(ResourceProgress),
				ResourcePattern(ResourceDashboard),
			},
			ResourceAssignments: {
				ResourcePattern(ResourceAssignments),
				ResourcePattern(ResourceDashboard),
			},
			ResourceCertificates: {
				ResourcePattern(ResourceCertificates),
				ResourcePattern(ResourceDashboard),
			},
		},
	}
}

// Store exposes the underlying cache handle for read paths.
func (c *Coordinator) Store() *Store {
	return c.store
}

// InvalidateResource purges every pattern fanned out from a mutation
// on resource.
func (c *Coordinator) InvalidateResource(ctx context.Context, resource string) {
	patterns, ok := c.fanout[resource]
	if !ok {
		patterns = []string{ResourcePattern(resource)}
	}
	for _, pattern := range patterns {
		c.store.DelPattern(ctx, pattern)
	}
}

// InvalidateEntity purges the fan-out patterns for resource and the
// single-entity key for id. The entity key is already covered by the
// resource pattern; deleting it directly keeps the purge correct even
// if the fan-out table is trimmed later.
func (c *Coordinator) InvalidateEntity(ctx context.Context, resource string, id uint) {
	c.InvalidateResource(ctx, resource)
	c.store.Del(ctx, EntityKey(resource, id))
}
