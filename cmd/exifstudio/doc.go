// Package main hosts the exifstudio CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into session
// workflows: ingesting image files, inspecting and editing metadata tags,
// exporting modified files, and configuration scaffolding. It centralizes
// configuration resolution, workspace access, and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
