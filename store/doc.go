// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store maps businesses, locations, feedback, and opt-ins onto a
kv.Store.

# Keys

	business:<id>              Business
	location:<id>              Location
	feedback:<id>              Feedback
	opt-in:<id>                OptIn
	business:<id>:feedback     index of feedback IDs
	business:<id>:opt-ins      index of opt-in IDs

# Writes

Creating feedback or an opt-in writes the entity and then adds its ID to the
business index with kv.Store.AddToIndex, which is atomic. Listing resolves
the index in one batch, drops IDs whose entity is gone, and sorts newest
first.

# Demo Data

SeedDemo writes the "demo-business" tenant and its fixed sample rows. It can
be called any number of times.
*/
package store
