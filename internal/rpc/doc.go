// Package rpc exposes the CRUD services as named procedures and provides a
// typed client for calling them.
//
// Procedures are addressed as <entity>.<op> under a single mount point.
// Queries (list, get) accept GET with the JSON input in the "input" query
// parameter, or POST with the input as the body. Mutations (create, update,
// remove) accept POST only.
//
// A successful call answers {"result":{"data":...}}. A failed call answers
// {"error":{"code":...,"message":...,"details":...}} with a matching status.
package rpc
