// Package server exposes conversion sessions over HTTP.
//
// Routes:
//
//	GET  /                                 upload page
//	GET  /static/*                         UI scripts and styles
//	GET  /health                           liveness check
//	POST /convert                          multipart "files[]" upload
//	GET  /download/:session_id/:filename   one PDF as an attachment
//	GET  /download-all/:session_id         every PDF of a session as a zip
//	POST /cleanup/:session_id              delete a session
//
// Errors are JSON objects of the form {"error": "..."} with messages taken
// from the configured session.Catalog.
package server
