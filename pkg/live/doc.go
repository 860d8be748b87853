// Package live serves one in-memory document over HTTP and WebSocket.
//
// Routes:
//
//	GET  /          current document HTML
//	POST /commands  apply a JSON command, reply with the JSON result
//	GET  /ws        websocket; inbound messages are commands
//	GET  /metrics   Prometheus metrics, when enabled
//
// Every mutation broadcasts the whole document to connected sockets:
//
//	{"type":"document","html":"<!DOCTYPE html>..."}
//
// Listeners registered with op "on" broadcast when op "dispatch" fires
// them:
//
//	{"type":"event","selector":"#app","event":"click","target":"<button>"}
//
// Reload swaps in a document changed elsewhere and broadcasts it the same
// way.
//
// Commands run one at a time; the document is never touched concurrently.
package live
