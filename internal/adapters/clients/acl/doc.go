// Package acl is the anti-corruption layer between the sync core and the
// remote quote endpoint.
//
// The remote speaks its own vocabulary: numeric or string ids, "title" and
// "body" instead of "text", and no categories at all for some deployments.
// Nothing outside this package sees those shapes. Adapters here
//
//   - decode remote DTOs and translate them into domain.Quote
//   - encode outgoing domain quotes into the remote's create payload
//   - map transport and status failures into domain errors
//
// The gateway methods that implement ports.RemoteGateway fail soft: they log
// the mapped error and return an empty slice or false, so an offline session
// keeps working on local data.
package acl
