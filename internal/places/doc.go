// Package places looks venues up through the Places text-search API.
//
// All calls go through one Client that paces requests at a fixed interval to
// stay under the service's rate limits. Lookups never fail: transport and
// service errors are logged as warnings and reported as "no result", the same
// as an empty search.
package places
