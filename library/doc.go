// Package library defines the lending-library domain on top of the generic
// synchronization engine: the four managed entity types (Author, Book, Member,
// BorrowRecord) with their draft shapes, typed REST endpoints for each
// collection, the borrow lifecycle specialization, and the Console aggregate
// that wires one store and edit session per collection.
//
// Entities are created only by the remote authority; the denormalized fields
// (authorName on a Book, bookTitle and memberName on a BorrowRecord) are
// computed server-side and reach the local collections through the
// write-then-read protocol.
package library
