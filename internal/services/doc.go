// Package services resolves lettings and profiles for the web and CLI surfaces.
//
// # Resolvers
//
// [LettingService] and [ProfileService] each expose List and Get.
// List returns every row in id order and never returns a nil slice.
// Get performs a single lookup joined with the owned address or the owning user.
//
// # Error Handling
//
// A Get with no matching row fails with [*NotFoundError], which matches [shared.ErrNotFound]:
//
//	_, err := lettings.Get(ctx, 999999)
//	errors.Is(err, shared.ErrNotFound) // true
//	err.Error()                        // "Letting with ID 999999 does not exist"
//
// Other store failures are wrapped with context and passed through.
package services
