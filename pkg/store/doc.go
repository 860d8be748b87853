// Package store loads and saves named HTML documents.
//
// FileStore roots names in a local directory, SQLiteStore keeps them as
// rows of one table and S3Store maps them to object keys under a bucket
// prefix. FromConfig builds whichever mdom.json selects.
//
// Missing documents give E100; any other failure gives E101.
package store
