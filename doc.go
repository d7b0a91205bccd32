// Package itemstore is the composition root for the item store.
//
// It connects the core item operations with a storage adapter using the
// Hexagonal Architecture pattern. The default adapter is a MongoDB
// collection; a YAML file adapter and an in-memory adapter are available
// for local use and tests.
//
// Every operation performs exactly one persistence call and yields an
// Outcome (Success, Created, NotFound or InternalError) that the HTTP layer
// maps onto a status code.
//
// Usage:
//
//	svc, err := itemstore.New(ctx, os.Getenv("MONGO_URI"),
//		itemstore.WithLogger(logger),
//	)
//
//	out := svc.CreateItem(ctx, itemstore.Item{Name: "widget", Description: "a thing"})
//	if !out.OK() {
//		// out.Message says what failed
//	}
//
// The store handle is opened once by New and shared by every operation.
// Close it through svc.Repository().Close(ctx) on shutdown.
package itemstore
