// Package core is the query side of the climate dashboard.
//
// It holds everything between an HTTP request and the JSON it returns,
// independent of the transport: resource descriptors, query parameter
// validation, SQL construction, row projection and the error taxonomy.
//
// # Resource Registry
//
// Every route is described once with a [Resource] and registered at init
// time (see package resources). One generic handler serves all of them:
//
//	core.Register(core.Resource{
//	    Key:    "pollution/co2",
//	    Tag:    core.TagPollution,
//	    Table:  "pollution",
//	    Fields: []core.Field{{Name: "co2_emissions"}},
//	})
//
// # Query Flow
//
//  1. [ParseFilter] validates country, year, order_by and tags
//  2. [BuildQuery] renders SELECT ... WHERE ... ORDER BY with $n arguments
//  3. [Service] runs it through a [RowSource] in a read-only transaction
//  4. [ProjectFact] or [ProjectCountry] replaces ids with [Locator] URLs
//
// Present filters always contribute a predicate, so country=0 and
// year=1900 filter like any other value.
//
// # Error Handling
//
// [ValidationError] maps to HTTP 400, [ErrNotFound] to a null body and
// [StoreUnavailableError] to HTTP 503. [MapError] turns any error into a
// [UserMessage] with a support code.
package core
