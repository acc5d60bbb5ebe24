// Package session manages conversion sessions: one directory pair per
// request under the upload and output roots, identified by a UUID.
//
// Manager.Convert saves the uploads, renders each one through a pooled
// converter, and reports per-file failures alongside the results.
// Downloads (single file or zip) and cleanup address a session by id only;
// ids that are not canonical UUIDs never reach the filesystem.
//
// Reaper optionally removes sessions whose clients never called cleanup.
package session
